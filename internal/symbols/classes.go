// Package symbols provides the class index: declaration-order lookup of
// classes and member resolution through the inheritance chain.
package symbols

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
)

// ClassTable indexes the class declarations of a program. Declaration order
// is preserved; it determines the vtable globals and the static-attribute
// region layout.
type ClassTable struct {
	decls []*ast.ClassDecl
	index map[string]int
}

// NewClassTable builds the index for a program.
func NewClassTable(p *ast.Program) *ClassTable {
	t := &ClassTable{index: make(map[string]int, len(p.Decls))}
	for _, d := range p.Decls {
		if _, dup := t.index[d.Name]; !dup {
			t.index[d.Name] = len(t.decls)
		}
		t.decls = append(t.decls, d)
	}
	return t
}

// Decls returns the declarations in source order.
func (t *ClassTable) Decls() []*ast.ClassDecl { return t.decls }

// Lookup returns the declaration of name, or nil when no such class exists.
func (t *ClassTable) Lookup(name string) *ast.ClassDecl {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.decls[i]
}

// DeclIndex returns the declaration-order index of name, or -1.
func (t *ClassTable) DeclIndex(name string) int {
	i, ok := t.index[name]
	if !ok {
		return -1
	}
	return i
}

// Ancestors returns the proper ancestors of decl, bottom-to-top. The walk
// stops silently at an unknown superclass; the checker reports that case
// itself.
func (t *ClassTable) Ancestors(decl *ast.ClassDecl) []*ast.ClassDecl {
	var out []*ast.ClassDecl
	for cur := decl; cur != nil && cur.Super != nil; {
		parent := t.Lookup(cur.Super.Name)
		if parent == nil {
			break
		}
		out = append(out, parent)
		cur = parent
	}
	return out
}

// FindMethod resolves an instance method by name, searching decl first and
// then its ancestors. The owning class is returned alongside the method so
// callers can mangle the defining class into dispatch labels.
func (t *ClassTable) FindMethod(name string, decl *ast.ClassDecl) (*ast.MethodDecl, *ast.ClassDecl) {
	for cur := decl; cur != nil; {
		for _, m := range cur.InstMethods {
			if m.Name == name {
				return m, cur
			}
		}
		if cur.Super == nil {
			break
		}
		cur = t.Lookup(cur.Super.Name)
	}
	return nil, nil
}

// FindInstAttr resolves an instance attribute by name through the
// inheritance chain, most-derived class first.
func (t *ClassTable) FindInstAttr(name string, decl *ast.ClassDecl) (*ast.Param, *ast.ClassDecl) {
	for cur := decl; cur != nil; {
		for _, a := range cur.InstAttrs {
			if a.Name == name {
				return a, cur
			}
		}
		if cur.Super == nil {
			break
		}
		cur = t.Lookup(cur.Super.Name)
	}
	return nil, nil
}

// StaticAttr resolves a static attribute declared by decl itself. Static
// members are not inherited.
func (t *ClassTable) StaticAttr(name string, decl *ast.ClassDecl) *ast.Param {
	for _, a := range decl.StaticAttrs {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// StaticMethod resolves a static method declared by decl itself.
func (t *ClassTable) StaticMethod(name string, decl *ast.ClassDecl) *ast.MethodDecl {
	for _, m := range decl.StaticMethods {
		if m.Name == name {
			return m
		}
	}
	return nil
}
