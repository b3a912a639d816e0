// means - arithmetic language compiler and stack VM
//
// Compiles a means program and runs it, printing the value of the last
// assignment. Debug flags dump the parsed program or the bytecode instead.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/kolkov/means"
)

// version may be overridden at build time via -ldflags.
var version = means.Version

// Exit statuses.
const (
	exitOK    = 0
	exitFault = 1 // VM fault
	exitUsage = 2 // Bad arguments, config, parse or compile error
)

// CLI describes the command line.
type CLI struct {
	File      string           `arg:"" optional:"" help:"Program file to run (\"-\" or omitted reads stdin)."`
	Expr      string           `short:"e" help:"Program source given on the command line."`
	Config    string           `short:"c" help:"YAML configuration file (must exist)." placeholder:"PATH"`
	AST       bool             `short:"d" name:"ast" help:"Print the parsed program to stderr and exit."`
	Disasm    bool             `short:"a" name:"disassemble" help:"Print the bytecode to stderr and exit."`
	Optimize  bool             `short:"O" help:"Fold constant subexpressions before running."`
	Trace     bool             `help:"Trace each executed instruction to stderr."`
	StackSize int              `help:"VM stack capacity (overrides config)."`
	NoColor   bool             `help:"Disable colored output."`
	Version   kong.VersionFlag `help:"Show version and exit."`
}

// palette holds the colors used for each kind of message.
type palette struct {
	warn   *color.Color
	err    *color.Color
	result *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		warn:   color.New(color.FgYellow),
		err:    color.New(color.FgRed),
		result: color.New(color.FgGreen),
	}
	if noColor {
		p.warn.DisableColor()
		p.err.DisableColor()
		p.result.DisableColor()
	}
	return p
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exited, exitCode := false, exitOK

	parser, err := kong.New(&cli,
		kong.Name("means"),
		kong.Description("Compile and run a means program."),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			exited, exitCode = true, code
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "means: %v\n", err)
		return exitUsage
	}
	if _, err := parser.Parse(args); exited {
		return exitCode
	} else if err != nil {
		fmt.Fprintf(stderr, "means: %v\n", err)
		return exitUsage
	}

	colors := newPalette(cli.NoColor)
	fail := func(format string, a ...any) int {
		colors.err.Fprintf(stderr, "means: "+format+"\n", a...)
		return exitUsage
	}

	name, src, err := readSource(&cli, stdin)
	if err != nil {
		return fail("%v", err)
	}

	config, err := loadConfig(&cli)
	if err != nil {
		return fail("%v", err)
	}
	config.Output = stdout
	config.TraceOutput = stderr

	prog, err := means.CompileWithOptions(src, &means.CompileOptions{Optimize: cli.Optimize})
	if err != nil {
		reportCompileError(stderr, colors, name, err)
		return exitUsage
	}

	for _, d := range prog.Diagnostics() {
		colors.warn.Fprintf(stderr, "%s:%s: warning: skipped %q\n", name, position(d.ErrorPosition), d.Text)
	}

	if cli.AST {
		fmt.Fprint(stderr, prog.AST())
		return exitOK
	}
	if cli.Disasm {
		fmt.Fprint(stderr, prog.Disassemble())
		return exitOK
	}

	res, err := prog.Run(config)
	if err != nil {
		colors.err.Fprintf(stderr, "%s: %v\n", name, err)
		return exitFault
	}
	if res.HasValue {
		colors.result.Fprintln(stdout, strconv.FormatFloat(float64(res.Value), 'g', -1, 32))
	}
	return res.ExitCode
}

// readSource returns a display name and the program text.
func readSource(cli *CLI, stdin io.Reader) (string, string, error) {
	if cli.Expr != "" {
		if cli.File != "" {
			return "", "", errors.New("cannot use both a program file and -e")
		}
		return "<expr>", cli.Expr, nil
	}
	if cli.File == "" || cli.File == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(cli.File)
	if err != nil {
		return "", "", fmt.Errorf("failed to read program: %w", err)
	}
	return cli.File, string(data), nil
}

// loadConfig merges the config file, if any, with command-line overrides.
func loadConfig(cli *CLI) (*means.Config, error) {
	config := &means.Config{}
	if cli.Config != "" {
		// LoadConfig treats a missing file as defaults; an explicit path must exist.
		if _, err := os.Stat(cli.Config); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		var err error
		config, err = means.LoadConfig(cli.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cli.StackSize < 0 {
		return nil, fmt.Errorf("invalid --stack-size %d", cli.StackSize)
	}
	if cli.StackSize > 0 {
		config.StackSize = cli.StackSize
	}
	if cli.Trace {
		config.Trace = true
	}
	return config, nil
}

func reportCompileError(w io.Writer, colors palette, name string, err error) {
	var pe *means.ParseError
	if errors.As(err, &pe) && len(pe.Errors) > 0 {
		for _, item := range pe.Errors {
			colors.err.Fprintf(w, "%s:%s: %s\n", name, position(item.ErrorPosition), item.Message)
		}
		return
	}
	var ce *means.CompileError
	if errors.As(err, &ce) {
		colors.err.Fprintf(w, "%s:%s: undefined variable %q\n", name, position(ce.ErrorPosition), ce.Name)
		return
	}
	colors.err.Fprintf(w, "%s: %v\n", name, err)
}

func position(p means.ErrorPosition) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
