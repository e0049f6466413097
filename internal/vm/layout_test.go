package vm

import (
	"testing"

	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
)

func param(name, class string) *ast.Param { return &ast.Param{Name: name, ClassName: class} }

func emptyBlock() *ast.Block { return &ast.Block{} }

func class(name string, super string, attrs ...*ast.Param) *ast.ClassDecl {
	decl := &ast.ClassDecl{
		Name:      name,
		Ctor:      &ast.CtorDecl{Name: name, Body: emptyBlock()},
		InstAttrs: attrs,
	}
	if super != "" {
		decl.Super = &ast.SuperCall{Name: super}
	}
	return decl
}

func table(decls ...*ast.ClassDecl) *symbols.ClassTable {
	return symbols.NewClassTable(&ast.Program{Decls: decls, Instr: emptyBlock()})
}

func TestAttrOffsetsAncestorFirst(t *testing.T) {
	classes := table(
		class("A", "", param("x", "Integer"), param("y", "Integer")),
		class("B", "A", param("z", "Integer")),
	)
	cases := []struct {
		class, attr string
		want        int
	}{
		{"A", "x", 1},
		{"A", "y", 2},
		{"B", "x", 1},
		{"B", "y", 2},
		{"B", "z", 3},
	}
	for _, c := range cases {
		if got := AttrOffset(classes, c.class, c.attr); got != c.want {
			t.Errorf("AttrOffset(%s, %s) = %d, want %d", c.class, c.attr, got, c.want)
		}
	}
}

// The base class keeps its own slot for an attribute; a name the subclass
// redeclares resolves to the derived slot in the subclass.
func TestAttrOffsetStableAndShadowed(t *testing.T) {
	classes := table(
		class("A", "", param("x", "Integer")),
		class("B", "A", param("x", "Integer"), param("w", "Integer")),
	)
	if got := AttrOffset(classes, "A", "x"); got != 1 {
		t.Fatalf("AttrOffset(A, x) = %d, want 1", got)
	}
	if got := AttrOffset(classes, "B", "x"); got != 2 {
		t.Fatalf("AttrOffset(B, x) = %d, want 2 (most-derived-first)", got)
	}
	if got := AttrOffset(classes, "B", "w"); got != 3 {
		t.Fatalf("AttrOffset(B, w) = %d, want 3", got)
	}
}

func TestStaticAttrOffsets(t *testing.T) {
	a := class("A", "")
	a.StaticAttrs = []*ast.Param{param("s0", "Integer"), param("s1", "Integer")}
	b := class("B", "")
	b.StaticAttrs = []*ast.Param{param("t0", "Integer")}
	classes := table(a, b)

	// Globals 0..1 hold the two vtable pointers.
	cases := []struct {
		class, attr string
		want        int
	}{
		{"A", "s0", 2},
		{"A", "s1", 3},
		{"B", "t0", 4},
	}
	for _, c := range cases {
		if got := StaticAttrOffset(classes, c.class, c.attr); got != c.want {
			t.Errorf("StaticAttrOffset(%s, %s) = %d, want %d", c.class, c.attr, got, c.want)
		}
	}
	if got := TotalStatics(classes); got != 3 {
		t.Errorf("TotalStatics = %d, want 3", got)
	}
	if got := VtableGlobal(classes, "B"); got != 1 {
		t.Errorf("VtableGlobal(B) = %d, want 1", got)
	}
}

func TestMethodLabels(t *testing.T) {
	if got := MethodLabel("Point", "move"); got != "Point_4_move" {
		t.Errorf("MethodLabel = %q", got)
	}
	if got := CtorLabel("Point"); got != "_CTOR_Point_" {
		t.Errorf("CtorLabel = %q", got)
	}
}
