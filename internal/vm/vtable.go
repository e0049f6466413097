package vm

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
)

// Entry is one vtable slot: a method name and the most-derived class that
// defines it.
type Entry struct {
	Method string
	Class  string
}

// Vtable lists the dynamically dispatchable methods of a class in a stable
// order: ancestor-first, declaration order within each class. An override
// keeps the ancestor's slot and only updates the defining class.
type Vtable []Entry

// MakeVtable builds the vtable of decl.
func MakeVtable(classes *symbols.ClassTable, decl *ast.ClassDecl) Vtable {
	var vt Vtable
	if decl.Super != nil {
		if super := classes.Lookup(decl.Super.Name); super != nil {
			vt = append(vt, MakeVtable(classes, super)...)
		}
	}
	for _, m := range decl.InstMethods {
		slot := vt.Offset(m.Name)
		if slot >= 0 {
			vt[slot].Class = decl.Name
		} else {
			vt = append(vt, Entry{Method: m.Name, Class: decl.Name})
		}
	}
	return vt
}

// Offset returns the 0-based slot of meth, or -1.
func (vt Vtable) Offset(meth string) int {
	for i, e := range vt {
		if e.Method == meth {
			return i
		}
	}
	return -1
}
