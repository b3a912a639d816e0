// Package compiler compiles an AST into bytecode for the VM.
package compiler

import "fmt"

// Opcode represents a virtual machine instruction.
// Operands are stored inline in the code stream after their opcode.
type Opcode int32

const (
	// Stack operations
	Pop      Opcode = iota // Discard top of stack
	Constant               // Push constant: Constant index
	Local                  // Push copy of stack slot: Local slot

	// Arithmetic operators
	Add    // a + b
	Sub    // a - b
	Mul    // a * b
	Div    // a / b
	Mod    // a % b
	Negate // -a

	// I/O
	Print // Pop and write top of stack
)

// String returns the opcode name.
func (op Opcode) String() string {
	switch op {
	case Pop:
		return "Pop"
	case Constant:
		return "Constant"
	case Local:
		return "Local"
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case Mod:
		return "Mod"
	case Negate:
		return "Negate"
	case Print:
		return "Print"
	default:
		return fmt.Sprintf("Opcode(%d)", op)
	}
}

// Operands returns the number of inline operands that follow op.
func (op Opcode) Operands() int {
	switch op {
	case Constant, Local:
		return 1
	default:
		return 0
	}
}
