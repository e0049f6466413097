package vm

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
)

// Object layout: slot 0 holds the vtable pointer, followed by the instance
// attributes in ancestor-first order. Global memory starts with one vtable
// pointer per class in declaration order, then the static attributes of all
// classes grouped by class in declaration order.

// AllAttrs lists the instance attributes visible in decl, ancestor-first.
func AllAttrs(classes *symbols.ClassTable, decl *ast.ClassDecl) []*ast.Param {
	var out []*ast.Param
	if decl.Super != nil {
		if super := classes.Lookup(decl.Super.Name); super != nil {
			out = AllAttrs(classes, super)
		}
	}
	return append(out, decl.InstAttrs...)
}

// AttrOffset returns the 1-based object slot of attribute attr in instances
// of className. The attribute is resolved most-derived-first, so a
// redeclared name refers to the derived class's slot.
func AttrOffset(classes *symbols.ClassTable, className, attr string) int {
	decl := classes.Lookup(className)
	if decl == nil {
		return -1
	}
	attrs := AllAttrs(classes, decl)
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i].Name == attr {
			return i + 1
		}
	}
	return -1
}

// StaticAttrOffset returns the global slot of static attribute attr of
// className: past the vtable pointers, then past the statics of all classes
// declared earlier.
func StaticAttrOffset(classes *symbols.ClassTable, className, attr string) int {
	off := len(classes.Decls())
	for _, decl := range classes.Decls() {
		if decl.Name == className {
			for i, a := range decl.StaticAttrs {
				if a.Name == attr {
					return off + i
				}
			}
			return -1
		}
		off += len(decl.StaticAttrs)
	}
	return -1
}

// TotalStatics counts the static attributes of the whole program.
func TotalStatics(classes *symbols.ClassTable) int {
	total := 0
	for _, decl := range classes.Decls() {
		total += len(decl.StaticAttrs)
	}
	return total
}

// VtableGlobal returns the global slot holding className's vtable pointer.
func VtableGlobal(classes *symbols.ClassTable, className string) int {
	return classes.DeclIndex(className)
}
