package analyzer

import (
	"github.com/OopsOverflow/turbo-katana/internal/pipeline"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
)

// Processor runs the contextual checker as a pipeline stage. It also builds
// the class table later stages share.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Name() string { return "analyzer" }

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Program == nil {
		return ctx
	}
	ctx.Classes = symbols.NewClassTable(ctx.Program)
	if err := Check(ctx.Program, ctx.Classes); err != nil {
		ctx.AddError(err)
	}
	return ctx
}
