// Package vm executes compiled means code blocks on a fixed-capacity
// value stack.
//
// Execution is a single linear scan: the language has no control flow, so
// there are no jumps. Any fault halts the run at the faulting instruction.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/kolkov/means/internal/compiler"
	"github.com/kolkov/means/internal/types"
)

// DefaultStackSize is the stack capacity used when Config.StackSize is unset.
const DefaultStackSize = 100

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitFault = 1
)

// Config holds VM configuration options.
type Config struct {
	// StackSize is the fixed stack capacity (default: DefaultStackSize).
	StackSize int

	// Output receives the values written by Print (default: os.Stdout).
	Output io.Writer

	// Trace, if set, receives one line per executed instruction.
	Trace io.Writer
}

// VM is the means virtual machine. A VM is not safe for concurrent use;
// it runs one code block at a time.
type VM struct {
	// Value stack: fixed length, never grown.
	stack []types.Value
	sp    int // Stack pointer (index of next free slot)

	pc      int // Offset of the instruction being executed
	fault   Fault
	faultOp compiler.Opcode

	output io.Writer
	trace  io.Writer
}

// New creates a VM with the given configuration.
func New(config Config) *VM {
	if config.StackSize <= 0 {
		config.StackSize = DefaultStackSize
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &VM{
		stack:  make([]types.Value, config.StackSize),
		output: config.Output,
		trace:  config.Trace,
	}
}

// Run executes block from the start with an empty stack and returns
// ExitOK, or ExitFault if execution halted on a fault.
func (vm *VM) Run(block *compiler.CodeBlock) int {
	vm.reset()
	vm.execute(block)
	if vm.fault != NoError {
		if vm.trace != nil {
			fmt.Fprintf(vm.trace, "fault: %v\n", vm.Err())
		}
		return ExitFault
	}
	return ExitOK
}

// LastError returns the fault of the last run, or NoError.
func (vm *VM) LastError() Fault {
	return vm.fault
}

// Err returns a *RuntimeError describing the last fault, or nil.
func (vm *VM) Err() error {
	if vm.fault == NoError {
		return nil
	}
	return &RuntimeError{Fault: vm.fault, PC: vm.pc, Op: vm.faultOp.String()}
}

// Peek returns the value on top of the stack.
func (vm *VM) Peek() (types.Value, bool) {
	if vm.sp == 0 {
		return types.Value{}, false
	}
	return vm.stack[vm.sp-1], true
}

// Depth returns the number of values on the stack.
func (vm *VM) Depth() int {
	return vm.sp
}

// Stack returns a copy of the live stack, bottom first.
func (vm *VM) Stack() []types.Value {
	out := make([]types.Value, vm.sp)
	copy(out, vm.stack[:vm.sp])
	return out
}

func (vm *VM) reset() {
	vm.sp = 0
	vm.pc = 0
	vm.fault = NoError
	vm.faultOp = 0
}

// -----------------------------------------------------------------------------
// Stack Operations
// -----------------------------------------------------------------------------

// fail records the first fault of the run.
func (vm *VM) fail(f Fault, op compiler.Opcode) {
	if vm.fault == NoError {
		vm.fault = f
		vm.faultOp = op
	}
}

// push pushes a value onto the stack, faulting with StackOver when full.
func (vm *VM) push(v types.Value, op compiler.Opcode) bool {
	if vm.sp == len(vm.stack) {
		vm.fail(StackOver, op)
		return false
	}
	vm.stack[vm.sp] = v
	vm.sp++
	return true
}

// pop removes and returns the top value, faulting with StackUnder when empty.
func (vm *VM) pop(op compiler.Opcode) (types.Value, bool) {
	if vm.sp == 0 {
		vm.fail(StackUnder, op)
		return types.Value{}, false
	}
	vm.sp--
	return vm.stack[vm.sp], true
}

// binary pops the right then the left operand and pushes fn(left, right).
func (vm *VM) binary(op compiler.Opcode, fn func(a, b types.Value) types.Value) {
	r, ok := vm.pop(op)
	if !ok {
		return
	}
	l, ok := vm.pop(op)
	if !ok {
		return
	}
	vm.push(fn(l, r), op)
}

// -----------------------------------------------------------------------------
// Execution
// -----------------------------------------------------------------------------

func (vm *VM) execute(block *compiler.CodeBlock) {
	code := block.Code
	ip := 0
	for ip < len(code) && vm.fault == NoError {
		vm.pc = ip
		op := code[ip]
		ip++

		// Inline operand, if the opcode takes one.
		arg, hasArg := 0, false
		if op.Operands() > 0 && ip < len(code) {
			arg, hasArg = int(code[ip]), true
			ip++
		}

		if vm.trace != nil {
			vm.traceOp(op, arg, hasArg)
		}

		switch op {
		case compiler.Pop:
			vm.pop(op)

		case compiler.Constant:
			if !hasArg || arg < 0 || arg >= len(block.Constants) {
				vm.fail(NoConstant, op)
				break
			}
			vm.push(types.Num(block.Constants[arg]), op)

		case compiler.Local:
			if !hasArg || arg < 0 || arg >= vm.sp {
				vm.fail(InvalidLocal, op)
				break
			}
			vm.push(vm.stack[arg], op)

		case compiler.Add:
			vm.binary(op, types.Add)

		case compiler.Sub:
			vm.binary(op, types.Sub)

		case compiler.Mul:
			vm.binary(op, types.Mul)

		case compiler.Div:
			vm.binary(op, types.Div)

		case compiler.Mod:
			vm.binary(op, types.Mod)

		case compiler.Negate:
			if v, ok := vm.pop(op); ok {
				vm.push(types.Neg(v), op)
			}

		case compiler.Print:
			if v, ok := vm.pop(op); ok {
				fmt.Fprintln(vm.output, v.String())
			}

		default:
			vm.fail(InvalidOpcode, op)
		}
	}
}

func (vm *VM) traceOp(op compiler.Opcode, arg int, hasArg bool) {
	if hasArg {
		fmt.Fprintf(vm.trace, "%04d %s %d\tsp=%d\n", vm.pc, op, arg, vm.sp)
		return
	}
	fmt.Fprintf(vm.trace, "%04d %s\tsp=%d\n", vm.pc, op, vm.sp)
}
