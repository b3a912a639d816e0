package vm

import "fmt"

// Fault is the terminal condition of a run. Any fault other than NoError
// halts execution immediately.
type Fault uint8

const (
	NoError       Fault = iota // Run completed
	StackOver                  // Push onto a full stack
	StackUnder                 // Pop from an empty stack
	NoConstant                 // Constant index outside the pool
	InvalidLocal               // Local slot outside the live stack
	InvalidOpcode              // Unknown instruction
)

func (f Fault) String() string {
	switch f {
	case NoError:
		return "NoError"
	case StackOver:
		return "StackOver"
	case StackUnder:
		return "StackUnder"
	case NoConstant:
		return "NoConstant"
	case InvalidLocal:
		return "InvalidLocal"
	case InvalidOpcode:
		return "InvalidOpcode"
	default:
		return fmt.Sprintf("Fault(%d)", f)
	}
}

// Error implements error so a Fault can be matched with errors.Is.
func (f Fault) Error() string {
	switch f {
	case StackOver:
		return "stack overflow"
	case StackUnder:
		return "stack underflow"
	case NoConstant:
		return "no such constant"
	case InvalidLocal:
		return "invalid local slot"
	case InvalidOpcode:
		return "invalid opcode"
	default:
		return f.String()
	}
}

// RuntimeError reports a fault and the instruction that raised it.
type RuntimeError struct {
	Fault Fault
	PC    int    // Offset of the faulting instruction
	Op    string // Name of the faulting instruction
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s at %04d (%s)", e.Fault.Error(), e.PC, e.Op)
}

// Unwrap returns the underlying Fault.
func (e *RuntimeError) Unwrap() error {
	return e.Fault
}
