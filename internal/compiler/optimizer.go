// This file implements peephole optimization - a post-compilation pass that
// folds constant subexpressions into single Constant instructions.
//
// Folding never changes the value an assignment leaves on the stack, so
// local slot numbering is unaffected. It does lower the peak stack depth of
// an expression, which means a folded block may complete on a stack that
// the unfolded block would overflow.
package compiler

import "github.com/kolkov/means/internal/types"

// OptimizeBlock applies constant folding to b in place and compacts the
// constant pool. Blocks that reference missing constants are left as is.
func OptimizeBlock(b *CodeBlock) {
	if !constantsValid(b) {
		return
	}

	p := &peephole{block: b, code: make([]Opcode, 0, len(b.Code))}
	for i := 0; i < len(b.Code); {
		n := instructionLength(b.Code, i)
		p.emit(b.Code[i : i+n]...)
		i += n
	}

	b.Code = p.code
	compactConstants(b)
}

// peephole rebuilds a code stream, remembering where each instruction
// starts so patterns are matched on instruction boundaries only.
type peephole struct {
	block  *CodeBlock
	code   []Opcode
	starts []int
}

func (p *peephole) emit(instr ...Opcode) {
	p.starts = append(p.starts, len(p.code))
	p.code = append(p.code, instr...)
	p.fold()
}

func (p *peephole) op(j int) Opcode {
	return p.code[p.starts[j]]
}

// arg returns the constant referenced by the Constant instruction j.
func (p *peephole) arg(j int) types.Value {
	return types.Num(p.block.Constants[p.code[p.starts[j]+1]])
}

// truncate drops instruction j and everything after it.
func (p *peephole) truncate(j int) {
	p.code = p.code[:p.starts[j]]
	p.starts = p.starts[:j]
}

// fold rewrites the tail of the stream while it is a foldable pattern:
//
//	Constant a, Constant b, <binary op>  ->  Constant (a op b)
//	Constant a, Negate                   ->  Constant (-a)
func (p *peephole) fold() {
	for {
		k := len(p.starts)

		// Pattern: Constant + Negate
		if k >= 2 && p.op(k-1) == Negate && p.op(k-2) == Constant {
			v := types.Neg(p.arg(k - 2))
			p.truncate(k - 2)
			p.push(v)
			continue
		}

		// Pattern: Constant + Constant + binary op
		if k >= 3 && p.op(k-3) == Constant && p.op(k-2) == Constant {
			if fn := binaryFunc(p.op(k - 1)); fn != nil {
				v := fn(p.arg(k-3), p.arg(k-2))
				p.truncate(k - 3)
				p.push(v)
				continue
			}
		}

		return
	}
}

// push appends a Constant instruction for v without refolding.
func (p *peephole) push(v types.Value) {
	p.starts = append(p.starts, len(p.code))
	p.code = append(p.code, Constant, Opcode(p.block.AddConstant(v.AsNum())))
}

// binaryFunc returns the arithmetic the VM performs for op, or nil.
func binaryFunc(op Opcode) func(a, b types.Value) types.Value {
	switch op {
	case Add:
		return types.Add
	case Sub:
		return types.Sub
	case Mul:
		return types.Mul
	case Div:
		return types.Div
	case Mod:
		return types.Mod
	default:
		return nil
	}
}

// constantsValid reports whether every Constant operand is present and
// indexes the pool.
func constantsValid(b *CodeBlock) bool {
	for i := 0; i < len(b.Code); i += instructionLength(b.Code, i) {
		if b.Code[i] != Constant {
			continue
		}
		if i+1 >= len(b.Code) {
			return false
		}
		if idx := int(b.Code[i+1]); idx < 0 || idx >= len(b.Constants) {
			return false
		}
	}
	return true
}

// compactConstants drops unreferenced constants and renumbers the rest in
// order of first use.
func compactConstants(b *CodeBlock) {
	constants := make([]float32, 0, len(b.Constants))
	remap := make(map[Opcode]Opcode)
	for i := 0; i < len(b.Code); i += instructionLength(b.Code, i) {
		if b.Code[i] != Constant {
			continue
		}
		idx, ok := remap[b.Code[i+1]]
		if !ok {
			idx = Opcode(len(constants))
			constants = append(constants, b.Constants[b.Code[i+1]])
			remap[b.Code[i+1]] = idx
		}
		b.Code[i+1] = idx
	}
	b.Constants = constants
}

// instructionLength returns the length of the instruction at position i,
// clamped to the end of code.
func instructionLength(code []Opcode, i int) int {
	n := 1 + code[i].Operands()
	if i+n > len(code) {
		n = len(code) - i
	}
	return n
}
