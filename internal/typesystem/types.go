// Package typesystem holds the typed view the checker and the code
// generator share: the identifier environment, expression typing and the
// subtype test.
package typesystem

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
)

// Built-in pseudo-classes and the no-value pseudo-type. They exist only in
// the type system; no ClassDecl backs them.
const (
	IntegerClass = "Integer"
	StringClass  = "String"
	VoidType     = "_Void"
)

// Reserved identifiers that user declarations may never rebind.
const (
	ThisName   = "this"
	SuperName  = "super"
	ResultName = "result"
)

// IsReservedName reports whether name is one of this, super, result.
func IsReservedName(name string) bool {
	return name == ThisName || name == SuperName || name == ResultName
}

// IsBuiltinClass reports whether name is one of the built-in pseudo-classes.
func IsBuiltinClass(name string) bool {
	return name == IntegerClass || name == StringClass
}

// Env maps identifiers in scope to their class names. Scopes clone their
// parent's map on entry, so each scope's view stays independent.
type Env map[string]string

// Clone returns an independent copy of the environment.
func (e Env) Clone() Env {
	out := make(Env, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ExprType computes the class name an expression evaluates to, or VoidType
// for value-less calls. It assumes the expression already passed the
// checker; lookups that cannot resolve degrade to VoidType instead of
// panicking.
func ExprType(env Env, classes *symbols.ClassTable, e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLit, *ast.BinOp, *ast.UnaryMinus:
		return IntegerClass
	case *ast.StrLit, *ast.StrCat:
		return StringClass
	case *ast.Ident:
		if t, ok := env[n.Name]; ok {
			return t
		}
		return VoidType
	case *ast.AttrAccess:
		recv := ExprType(env, classes, n.Recv)
		if decl := classes.Lookup(recv); decl != nil {
			if attr, _ := classes.FindInstAttr(n.Name, decl); attr != nil {
				return attr.ClassName
			}
		}
		return VoidType
	case *ast.StaticAttrAccess:
		if decl := classes.Lookup(n.ClassName); decl != nil {
			if attr := classes.StaticAttr(n.Name, decl); attr != nil {
				return attr.ClassName
			}
		}
		return VoidType
	case *ast.MethodCall:
		recv := ExprType(env, classes, n.Recv)
		if recv == IntegerClass && n.Name == "toString" {
			return StringClass
		}
		if recv == StringClass && (n.Name == "print" || n.Name == "println") {
			return StringClass
		}
		if decl := classes.Lookup(recv); decl != nil {
			if meth, _ := classes.FindMethod(n.Name, decl); meth != nil && meth.RetType != "" {
				return meth.RetType
			}
		}
		return VoidType
	case *ast.StaticCall:
		if decl := classes.Lookup(n.ClassName); decl != nil {
			if meth := classes.StaticMethod(n.Name, decl); meth != nil && meth.RetType != "" {
				return meth.RetType
			}
		}
		return VoidType
	case *ast.New:
		return n.ClassName
	case *ast.Cast:
		return n.ClassName
	default:
		return VoidType
	}
}

// IsBase reports whether base is derived itself or one of its ancestors.
// Both names must denote declared classes; callers gate the built-in
// pseudo-classes and VoidType.
func IsBase(classes *symbols.ClassTable, derived, base string) bool {
	if derived == base {
		return true
	}
	decl := classes.Lookup(derived)
	if decl == nil {
		return false
	}
	for _, anc := range classes.Ancestors(decl) {
		if anc.Name == base {
			return true
		}
	}
	return false
}
