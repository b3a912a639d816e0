package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeBlock is a compiled program: a linear instruction stream and a
// constant pool. It is append-only while compiling; OptimizeBlock may
// rewrite it before it is run.
type CodeBlock struct {
	// Code contains opcodes followed by their inline operands.
	Code []Opcode

	// Constants is the numeric constant pool referenced by Constant.
	Constants []float32
}

// NewCodeBlock returns an empty block.
func NewCodeBlock() *CodeBlock {
	return &CodeBlock{}
}

// Emit appends an opcode and its operands.
func (b *CodeBlock) Emit(op Opcode, operands ...int) {
	b.Code = append(b.Code, op)
	for _, arg := range operands {
		b.Code = append(b.Code, Opcode(arg))
	}
}

// AddConstant appends v to the constant pool and returns its index.
func (b *CodeBlock) AddConstant(v float32) int {
	b.Constants = append(b.Constants, v)
	return len(b.Constants) - 1
}

// Disassemble returns a human-readable listing of the block.
func (b *CodeBlock) Disassemble() string {
	var sb strings.Builder

	if len(b.Constants) > 0 {
		sb.WriteString("=== Constants ===\n")
		for i, c := range b.Constants {
			fmt.Fprintf(&sb, "  [%d] %s\n", i, formatNum(c))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("=== Code ===\n")
	for i := 0; i < len(b.Code); i++ {
		op := b.Code[i]
		fmt.Fprintf(&sb, "  %04d: %s", i, op)

		switch op {
		case Constant:
			if i+1 < len(b.Code) {
				i++
				idx := int(b.Code[i])
				if idx >= 0 && idx < len(b.Constants) {
					fmt.Fprintf(&sb, " [%d] = %s", idx, formatNum(b.Constants[idx]))
				} else {
					fmt.Fprintf(&sb, " [%d]", idx)
				}
			}
		case Local:
			if i+1 < len(b.Code) {
				i++
				fmt.Fprintf(&sb, " [%d]", b.Code[i])
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatNum(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
