// Package cli implements the katana driver: it loads the options and the
// parsed program, runs the compilation pipeline and writes the VM program.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/OopsOverflow/turbo-katana/internal/analyzer"
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/config"
	"github.com/OopsOverflow/turbo-katana/internal/diagnostics"
	"github.com/OopsOverflow/turbo-katana/internal/pipeline"
	"github.com/OopsOverflow/turbo-katana/internal/vm"
)

// Exit codes of the katana binary.
const (
	ExitOK         = 0
	ExitContextual = 1
	ExitUsage      = 2
)

// Args are the resolved driver arguments. Flag values override the options
// file.
type Args struct {
	Input       string // path of the AST JSON, "-" for stdin
	Output      string // overrides Options.Output when set
	OptionsFile string
	LogLevel    string // overrides Options.LogLevel when set
	NoComments  bool
}

// Entry runs one compilation and returns the process exit code.
func Entry(a Args, stderr io.Writer) int {
	opts, err := resolveOptions(a)
	if err != nil {
		fmt.Fprintf(stderr, "katana: %v\n", err)
		return ExitUsage
	}
	setupLogging(opts, stderr)

	program, err := loadProgram(a.Input)
	if err != nil {
		fmt.Fprintf(stderr, "katana: %v\n", err)
		return ExitUsage
	}

	out, closeOut, err := openOutput(opts.Output)
	if err != nil {
		fmt.Fprintf(stderr, "katana: %v\n", err)
		return ExitUsage
	}
	defer closeOut()

	ctx := pipeline.NewContext(program, opts, out)
	log.WithFields(log.Fields{"run": ctx.RunID, "classes": len(program.Decls)}).
		Debug("starting compilation")

	pipe := pipeline.New(analyzer.NewProcessor(), vm.NewProcessor())
	ctx = pipe.Run(ctx)

	if ctx.Failed() {
		for _, err := range ctx.Errors {
			renderError(stderr, err)
		}
		return ExitContextual
	}
	return ExitOK
}

func resolveOptions(a Args) (*config.Options, error) {
	opts := config.Default()
	if a.OptionsFile != "" {
		loaded, err := config.Load(a.OptionsFile)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}
	if a.Output != "" {
		opts.Output = a.Output
	}
	if a.LogLevel != "" {
		opts.LogLevel = a.LogLevel
	}
	if a.NoComments {
		opts.EmitComments = false
	}
	return opts, nil
}

func setupLogging(opts *config.Options, stderr io.Writer) {
	log.SetOutput(stderr)
	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		DisableColors: !stderrIsTerminal(stderr),
	})
}

func stderrIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func loadProgram(path string) (*ast.Program, error) {
	if path == "-" {
		return ast.DecodeProgram(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ast.DecodeProgram(f)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// renderError prints a compilation error, highlighting contextual errors in
// red when stderr is a terminal.
func renderError(stderr io.Writer, err error) {
	if ce, ok := diagnostics.AsContextual(err); ok {
		if stderrIsTerminal(stderr) {
			fmt.Fprintf(stderr, "\x1b[31m%s\x1b[0m: %s\n", ce.Code, ce.Message)
		} else {
			fmt.Fprintf(stderr, "%s: %s\n", ce.Code, ce.Message)
		}
		return
	}
	fmt.Fprintf(stderr, "katana: %v\n", err)
}
