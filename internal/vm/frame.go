package vm

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

// frame maps the identifiers of the function being emitted to their local
// stack slots and tracks the next free slot for block locals.
type frame struct {
	addrs map[string]int
	next  int
}

// newCtorFrame lays out a constructor frame: this at slot 0, then the
// parameters.
func newCtorFrame(params []*ast.Param) *frame {
	f := &frame{addrs: make(map[string]int, len(params)+1)}
	f.addrs[typesystem.ThisName] = 0
	for i, p := range params {
		f.addrs[p.Name] = i + 1
	}
	f.next = len(params) + 1
	return f
}

// newMethodFrame lays out an instance-method frame: this at slot 0, the
// parameters, then the result cell when the method returns a value.
func newMethodFrame(params []*ast.Param, hasResult bool) *frame {
	f := newCtorFrame(params)
	if hasResult {
		f.addrs[typesystem.ResultName] = f.next
		f.next++
	}
	return f
}

// newStaticFrame lays out a static-method frame: no this, parameters from
// slot 0, then the result cell when present.
func newStaticFrame(params []*ast.Param, hasResult bool) *frame {
	f := &frame{addrs: make(map[string]int, len(params)+1)}
	for i, p := range params {
		f.addrs[p.Name] = i
	}
	f.next = len(params)
	if hasResult {
		f.addrs[typesystem.ResultName] = f.next
		f.next++
	}
	return f
}

// newMainFrame is the empty frame of the top-level statement.
func newMainFrame() *frame {
	return &frame{addrs: make(map[string]int)}
}

// clone copies the frame so a block scope can extend it without touching
// the enclosing scope's view.
func (f *frame) clone() *frame {
	addrs := make(map[string]int, len(f.addrs))
	for k, v := range f.addrs {
		addrs[k] = v
	}
	return &frame{addrs: addrs, next: f.next}
}

// bind assigns the next free slot to name.
func (f *frame) bind(name string) int {
	slot := f.next
	f.addrs[name] = slot
	f.next++
	return slot
}
