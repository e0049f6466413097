// Package analyzer implements the contextual checker: name resolution,
// inheritance well-formedness, type checking, override discipline and the
// return-path analysis. The first violation aborts the whole pass.
package analyzer

import (
	"strings"

	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/diagnostics"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

// checker carries the class index through the walk.
type checker struct {
	classes *symbols.ClassTable
}

// Check verifies the whole program. It returns nil on success or the first
// *diagnostics.ContextualError encountered.
func Check(p *ast.Program, classes *symbols.ClassTable) error {
	c := &checker{classes: classes}
	if err := c.checkNoReservedClass(p); err != nil {
		return err
	}
	if err := c.checkNoDupClass(p); err != nil {
		return err
	}
	if err := c.checkNoCycles(p); err != nil {
		return err
	}
	for _, decl := range p.Decls {
		if err := c.checkDecl(decl); err != nil {
			return err
		}
	}
	return c.checkStmt(typesystem.Env{}, p.Instr)
}

func (c *checker) checkNoReservedClass(p *ast.Program) error {
	for _, decl := range p.Decls {
		if typesystem.IsBuiltinClass(decl.Name) {
			return diagnostics.Newf(diagnostics.ReservedClassName,
				"class name %s is reserved for the built-in class", decl.Name)
		}
	}
	return nil
}

func (c *checker) checkNoDupClass(p *ast.Program) error {
	seen := make(map[string]bool, len(p.Decls))
	for _, decl := range p.Decls {
		if seen[decl.Name] {
			return diagnostics.Newf(diagnostics.DuplicateClass,
				"class %s is declared more than once", decl.Name)
		}
		seen[decl.Name] = true
	}
	return nil
}

// checkNoCycles walks every inheritance chain keeping the ancestor path.
// Revisiting a class on the current path is a cycle; a superclass with no
// declaration is an unknown class.
func (c *checker) checkNoCycles(p *ast.Program) error {
	for _, decl := range p.Decls {
		path := []string{decl.Name}
		onPath := map[string]bool{decl.Name: true}
		for cur := decl; cur.Super != nil; {
			name := cur.Super.Name
			if onPath[name] {
				return diagnostics.Newf(diagnostics.InheritanceCycle,
					"inheritance cycle: %s", strings.Join(append(path, name), " -> "))
			}
			parent := c.classes.Lookup(name)
			if parent == nil {
				return diagnostics.Newf(diagnostics.UnknownClass,
					"class %s extends unknown class %s", cur.Name, name)
			}
			path = append(path, name)
			onPath[name] = true
			cur = parent
		}
	}
	return nil
}

// checkReservedParams rejects this/super/result among declared bindings.
func checkReservedParams(where string, params []*ast.Param) error {
	for _, p := range params {
		if typesystem.IsReservedName(p.Name) {
			return diagnostics.Newf(diagnostics.ReservedName,
				"%s declares reserved name %s", where, p.Name)
		}
	}
	return nil
}

// compatible reports whether a value of class src may flow into a slot of
// class dst. Built-in classes only match themselves; concrete classes use
// the subtype relation. Unknown class names surface as an error.
func (c *checker) compatible(src, dst string) (bool, error) {
	if src == dst {
		return true, nil
	}
	if src == typesystem.VoidType || dst == typesystem.VoidType {
		return false, nil
	}
	if typesystem.IsBuiltinClass(src) || typesystem.IsBuiltinClass(dst) {
		return false, nil
	}
	if c.classes.Lookup(src) == nil {
		return false, diagnostics.Newf(diagnostics.UnknownClass, "unknown class %s", src)
	}
	if c.classes.Lookup(dst) == nil {
		return false, diagnostics.Newf(diagnostics.UnknownClass, "unknown class %s", dst)
	}
	return typesystem.IsBase(c.classes, src, dst), nil
}
