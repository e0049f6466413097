// Package pipeline chains the compilation stages over a shared context.
package pipeline

import (
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/config"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
)

// Context carries a single compilation through the stages.
type Context struct {
	RunID   uuid.UUID
	Options *config.Options

	Program *ast.Program
	Classes *symbols.ClassTable

	// Out receives the emitted VM program.
	Out io.Writer

	Errors []error
}

// NewContext prepares a context for one compilation run.
func NewContext(program *ast.Program, opts *config.Options, out io.Writer) *Context {
	return &Context{
		RunID:   uuid.New(),
		Options: opts,
		Program: program,
		Out:     out,
	}
}

// AddError records a stage failure.
func (c *Context) AddError(err error) {
	c.Errors = append(c.Errors, err)
}

// Failed reports whether any stage has failed. Later stages no-op once it
// returns true; the checker aborts the pipeline before anything is emitted.
func (c *Context) Failed() bool {
	return len(c.Errors) > 0
}

// Processor is one compilation stage.
type Processor interface {
	Process(ctx *Context) *Context
	Name() string
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Failed() {
			break
		}
		log.WithFields(log.Fields{"run": ctx.RunID, "stage": processor.Name()}).
			Debug("running stage")
		ctx = processor.Process(ctx)
	}
	return ctx
}
