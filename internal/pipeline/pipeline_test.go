package pipeline

import (
	"strings"
	"testing"

	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/config"
	"github.com/OopsOverflow/turbo-katana/internal/diagnostics"
)

type recordingProcessor struct {
	name string
	ran  *[]string
	fail error
}

func (p *recordingProcessor) Name() string { return p.name }

func (p *recordingProcessor) Process(ctx *Context) *Context {
	*p.ran = append(*p.ran, p.name)
	if p.fail != nil {
		ctx.AddError(p.fail)
	}
	return ctx
}

func newTestContext(out *strings.Builder) *Context {
	program := &ast.Program{Instr: &ast.Block{}}
	return NewContext(program, config.Default(), out)
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var ran []string
	pipe := New(
		&recordingProcessor{name: "first", ran: &ran},
		&recordingProcessor{name: "second", ran: &ran},
	)
	ctx := pipe.Run(newTestContext(&strings.Builder{}))
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
		t.Errorf("stages ran as %v", ran)
	}
}

// The pipeline is fail-fast: a checker failure must suppress code
// generation entirely.
func TestPipelineStopsAfterFailure(t *testing.T) {
	var ran []string
	boom := diagnostics.Newf(diagnostics.UnknownClass, "unknown class Ghost")
	pipe := New(
		&recordingProcessor{name: "checker", ran: &ran, fail: boom},
		&recordingProcessor{name: "codegen", ran: &ran},
	)
	ctx := pipe.Run(newTestContext(&strings.Builder{}))
	if !ctx.Failed() {
		t.Fatal("expected a failed context")
	}
	if len(ran) != 1 || ran[0] != "checker" {
		t.Errorf("stages ran as %v, want [checker]", ran)
	}
	if ce, ok := diagnostics.AsContextual(ctx.Errors[0]); !ok || ce.Code != diagnostics.UnknownClass {
		t.Errorf("error = %v", ctx.Errors[0])
	}
}

func TestContextRunIDsDiffer(t *testing.T) {
	a := newTestContext(&strings.Builder{})
	b := newTestContext(&strings.Builder{})
	if a.RunID == b.RunID {
		t.Error("two runs share an id")
	}
}
