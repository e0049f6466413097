package symbols

import (
	"testing"

	"github.com/OopsOverflow/turbo-katana/internal/ast"
)

func decl(name, super string) *ast.ClassDecl {
	d := &ast.ClassDecl{Name: name, Ctor: &ast.CtorDecl{Name: name, Body: &ast.Block{}}}
	if super != "" {
		d.Super = &ast.SuperCall{Name: super}
	}
	return d
}

func TestLookupAndDeclIndex(t *testing.T) {
	classes := NewClassTable(&ast.Program{Decls: []*ast.ClassDecl{decl("A", ""), decl("B", "A")}})
	if classes.Lookup("A") == nil || classes.Lookup("B") == nil {
		t.Fatal("declared classes not found")
	}
	if classes.Lookup("C") != nil {
		t.Fatal("undeclared class found")
	}
	if got := classes.DeclIndex("B"); got != 1 {
		t.Errorf("DeclIndex(B) = %d, want 1", got)
	}
	if got := classes.DeclIndex("C"); got != -1 {
		t.Errorf("DeclIndex(C) = %d, want -1", got)
	}
}

func TestAncestorsBottomToTop(t *testing.T) {
	classes := NewClassTable(&ast.Program{
		Decls: []*ast.ClassDecl{decl("A", ""), decl("B", "A"), decl("C", "B")},
	})
	ancs := classes.Ancestors(classes.Lookup("C"))
	if len(ancs) != 2 || ancs[0].Name != "B" || ancs[1].Name != "A" {
		names := make([]string, len(ancs))
		for i, a := range ancs {
			names[i] = a.Name
		}
		t.Errorf("Ancestors(C) = %v, want [B A]", names)
	}
	if len(classes.Ancestors(classes.Lookup("A"))) != 0 {
		t.Error("base class has ancestors")
	}
}

func TestFindMethodShadowing(t *testing.T) {
	a := decl("A", "")
	a.InstMethods = []*ast.MethodDecl{{Name: "m", Body: &ast.Block{}}}
	b := decl("B", "A")
	b.InstMethods = []*ast.MethodDecl{{Name: "m", Override: true, Body: &ast.Block{}}}
	classes := NewClassTable(&ast.Program{Decls: []*ast.ClassDecl{a, b}})

	meth, owner := classes.FindMethod("m", b)
	if meth == nil || owner.Name != "B" {
		t.Errorf("FindMethod(m, B) owner = %v, want B", owner)
	}
	meth, owner = classes.FindMethod("m", a)
	if meth == nil || owner.Name != "A" {
		t.Errorf("FindMethod(m, A) owner = %v, want A", owner)
	}
	if meth, _ := classes.FindMethod("ghost", b); meth != nil {
		t.Error("found ghost method")
	}
}

func TestInstAttrInherited(t *testing.T) {
	a := decl("A", "")
	a.InstAttrs = []*ast.Param{{Name: "x", ClassName: "Integer"}}
	b := decl("B", "A")
	classes := NewClassTable(&ast.Program{Decls: []*ast.ClassDecl{a, b}})

	attr, owner := classes.FindInstAttr("x", b)
	if attr == nil || owner.Name != "A" {
		t.Errorf("FindInstAttr(x, B) owner = %v, want A", owner)
	}
}

func TestStaticMembersNotInherited(t *testing.T) {
	a := decl("A", "")
	a.StaticAttrs = []*ast.Param{{Name: "s", ClassName: "Integer"}}
	a.StaticMethods = []*ast.MethodDecl{{Name: "f", Body: &ast.Block{}}}
	b := decl("B", "A")
	classes := NewClassTable(&ast.Program{Decls: []*ast.ClassDecl{a, b}})

	if classes.StaticAttr("s", a) == nil || classes.StaticMethod("f", a) == nil {
		t.Fatal("own static members not found")
	}
	if classes.StaticAttr("s", b) != nil || classes.StaticMethod("f", b) != nil {
		t.Error("static members leaked into the subclass")
	}
}
