// Package means provides a compiler and stack virtual machine for a small
// arithmetic language with variable assignment.
//
// A means program is a sequence of assignments:
//
//	x = 3.0;
//	y = x * 2 + 1;
//	x = y % 4;
//
// Values are 32-bit floats. Integer literals are accepted and converted.
// Binary operators are + - * / %, with * / % binding tighter than + -, all
// left-associative; unary minus binds tightest. Assigning to an existing
// name introduces a new binding that shadows the old one.
//
// # Quick Start
//
// For simple one-off execution:
//
//	res, err := means.Run("x = 1 + 2; y = x * 4;", nil)
//	// res.Value == 12
//
// With configuration:
//
//	res, err := means.Run(src, &means.Config{StackSize: 16, Trace: true})
//
// # Compiled Programs
//
// For repeated execution of the same program:
//
//	prog, err := means.Compile(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Disassemble())
//	res, err := prog.Run(nil)
//
// # Configuration
//
// The [Config] type sets the VM stack capacity, tracing and output
// writers. [LoadConfig] reads the same settings from a YAML file.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors, all of them collected in one pass
//   - [CompileError]: references to undeclared variables
//   - [RuntimeError]: VM faults such as stack overflow
//
// Unrecognized characters in the source are not errors; they are skipped
// and reported by [Program.Diagnostics].
//
// # Thread Safety
//
// Compiled [Program] objects are safe for concurrent use.
// Each call to [Program.Run] creates an independent VM.
package means
