package vm

import (
	"github.com/OopsOverflow/turbo-katana/internal/pipeline"
)

// Processor runs code generation as a pipeline stage. It only runs on a
// checked program; the pipeline skips it when the checker failed.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Name() string { return "codegen" }

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Program == nil || ctx.Classes == nil || ctx.Out == nil {
		return ctx
	}
	em := NewEmitter(ctx.Out)
	if ctx.Options != nil {
		em.SetComments(ctx.Options.EmitComments)
	}
	compiler := NewCompiler(ctx.Classes, em)
	if err := compiler.Compile(ctx.Program); err != nil {
		ctx.AddError(err)
	}
	return ctx
}
