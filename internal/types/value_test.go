package types

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Value
		want float32
	}{
		{"add", Add(Num(1), Num(2)), 3},
		{"sub", Sub(Num(10), Num(8)), 2},
		{"mul", Mul(Num(2.5), Num(4)), 10},
		{"div", Div(Num(7), Num(2)), 3.5},
		{"mod", Mod(Num(7), Num(3)), 1},
		{"mod negative dividend", Mod(Num(-7), Num(3)), -1},
		{"mod negative divisor", Mod(Num(7), Num(-3)), 1},
		{"mod fraction", Mod(Num(5.5), Num(2)), 1.5},
		{"neg", Neg(Num(4)), -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.AsNum() != tt.want {
				t.Errorf("got %v, want %v", tt.got.AsNum(), tt.want)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	if v := Div(Num(1), Num(0)); !math.IsInf(float64(v.AsNum()), 1) {
		t.Errorf("1/0 = %v, want +Inf", v)
	}
	if v := Div(Num(-1), Num(0)); !math.IsInf(float64(v.AsNum()), -1) {
		t.Errorf("-1/0 = %v, want -Inf", v)
	}
	if v := Div(Num(0), Num(0)); !math.IsNaN(float64(v.AsNum())) {
		t.Errorf("0/0 = %v, want NaN", v)
	}
	if v := Mod(Num(1), Num(0)); !math.IsNaN(float64(v.AsNum())) {
		t.Errorf("1%%0 = %v, want NaN", v)
	}
	if Div(Num(1), Num(0)).IsFinite() {
		t.Error("Inf reported as finite")
	}
	if !Num(1).IsFinite() {
		t.Error("1 reported as not finite")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Num(3), "3"},
		{Num(2.5), "2.5"},
		{Num(0.1), "0.1"},
		{Num(-4), "-4"},
		{Div(Num(1), Num(0)), "+Inf"},
		{Mod(Num(1), Num(0)), "NaN"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if Num(1).Kind().String() != "num" {
		t.Error("Kind().String() != num")
	}
}
