package analyzer

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/diagnostics"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

func (c *checker) checkExpr(env typesystem.Env, e ast.Expr) error {
	switch n := e.(type) {
	case *ast.IntLit, *ast.StrLit:
		return nil

	case *ast.Ident:
		if _, ok := env[n.Name]; !ok {
			if n.Name == typesystem.SuperName {
				return diagnostics.Newf(diagnostics.SuperMissing,
					"super used outside a class with a superclass")
			}
			return diagnostics.Newf(diagnostics.UnknownIdentifier,
				"unknown identifier %s", n.Name)
		}
		return nil

	case *ast.AttrAccess:
		if err := c.checkExpr(env, n.Recv); err != nil {
			return err
		}
		t := typesystem.ExprType(env, c.classes, n.Recv)
		if t == typesystem.VoidType {
			return diagnostics.Newf(diagnostics.TypeMismatch,
				"attribute access on an expression with no value")
		}
		if typesystem.IsBuiltinClass(t) {
			return diagnostics.Newf(diagnostics.UnknownAttribute,
				"built-in class %s has no attributes", t)
		}
		decl := c.classes.Lookup(t)
		if decl == nil {
			return diagnostics.Newf(diagnostics.UnknownClass, "unknown class %s", t)
		}
		if attr, _ := c.classes.FindInstAttr(n.Name, decl); attr == nil {
			return diagnostics.Newf(diagnostics.UnknownAttribute,
				"class %s has no attribute %s", t, n.Name)
		}
		return nil

	case *ast.StaticAttrAccess:
		if typesystem.IsBuiltinClass(n.ClassName) {
			return diagnostics.Newf(diagnostics.UnknownStaticAttribute,
				"built-in class %s has no static attributes", n.ClassName)
		}
		decl := c.classes.Lookup(n.ClassName)
		if decl == nil {
			return diagnostics.Newf(diagnostics.UnknownClass,
				"unknown class %s", n.ClassName)
		}
		if c.classes.StaticAttr(n.Name, decl) == nil {
			return diagnostics.Newf(diagnostics.UnknownStaticAttribute,
				"class %s has no static attribute %s", n.ClassName, n.Name)
		}
		return nil

	case *ast.UnaryMinus:
		return c.checkExpr(env, n.Operand)

	case *ast.BinOp:
		if err := c.checkExpr(env, n.Left); err != nil {
			return err
		}
		if err := c.checkExpr(env, n.Right); err != nil {
			return err
		}
		lt := typesystem.ExprType(env, c.classes, n.Left)
		rt := typesystem.ExprType(env, c.classes, n.Right)
		if lt != typesystem.IntegerClass || rt != typesystem.IntegerClass {
			return diagnostics.Newf(diagnostics.OperandsNotInteger,
				"operator %s wants Integer operands, got %s and %s", n.Op, lt, rt)
		}
		return nil

	case *ast.StrCat:
		if err := c.checkExpr(env, n.Left); err != nil {
			return err
		}
		if err := c.checkExpr(env, n.Right); err != nil {
			return err
		}
		lt := typesystem.ExprType(env, c.classes, n.Left)
		rt := typesystem.ExprType(env, c.classes, n.Right)
		if lt != typesystem.StringClass || rt != typesystem.StringClass {
			return diagnostics.Newf(diagnostics.OperandsNotString,
				"concatenation wants String operands, got %s and %s", lt, rt)
		}
		return nil

	case *ast.MethodCall:
		return c.checkCall(env, n)

	case *ast.StaticCall:
		if typesystem.IsBuiltinClass(n.ClassName) {
			return diagnostics.Newf(diagnostics.UnknownStaticMethod,
				"built-in class %s has no static methods", n.ClassName)
		}
		decl := c.classes.Lookup(n.ClassName)
		if decl == nil {
			return diagnostics.Newf(diagnostics.UnknownClass,
				"unknown class %s", n.ClassName)
		}
		meth := c.classes.StaticMethod(n.Name, decl)
		if meth == nil {
			return diagnostics.Newf(diagnostics.UnknownStaticMethod,
				"class %s has no static method %s", n.ClassName, n.Name)
		}
		return c.checkArgs(env, n.Args, meth.Params, n.ClassName+"."+n.Name)

	case *ast.New:
		decl := c.classes.Lookup(n.ClassName)
		if decl == nil {
			return diagnostics.Newf(diagnostics.UnknownClass,
				"unknown class %s", n.ClassName)
		}
		return c.checkCtorArgs(env, n.Args, decl.Ctor.Params, "new "+n.ClassName, n.ClassName)

	case *ast.Cast:
		if err := c.checkExpr(env, n.Operand); err != nil {
			return err
		}
		t := typesystem.ExprType(env, c.classes, n.Operand)
		if t == n.ClassName {
			return nil
		}
		if !typesystem.IsBuiltinClass(n.ClassName) && c.classes.Lookup(n.ClassName) == nil {
			return diagnostics.Newf(diagnostics.UnknownClass,
				"unknown class %s", n.ClassName)
		}
		if t == typesystem.VoidType || typesystem.IsBuiltinClass(t) ||
			typesystem.IsBuiltinClass(n.ClassName) {
			return diagnostics.Newf(diagnostics.CastNotUpCast,
				"cannot cast %s to %s", t, n.ClassName)
		}
		if !typesystem.IsBase(c.classes, t, n.ClassName) {
			return diagnostics.Newf(diagnostics.CastNotUpCast,
				"%s is not an ancestor of %s", n.ClassName, t)
		}
		return nil

	default:
		return diagnostics.Newf(diagnostics.TypeMismatch, "unknown expression %T", e)
	}
}

// checkCall verifies a dynamically dispatched call, including the built-in
// methods of Integer and String.
func (c *checker) checkCall(env typesystem.Env, call *ast.MethodCall) error {
	if err := c.checkExpr(env, call.Recv); err != nil {
		return err
	}
	t := typesystem.ExprType(env, c.classes, call.Recv)
	if t == typesystem.VoidType {
		return diagnostics.Newf(diagnostics.TypeMismatch,
			"method call on an expression with no value")
	}

	if typesystem.IsBuiltinClass(t) {
		ok := (t == typesystem.IntegerClass && call.Name == "toString") ||
			(t == typesystem.StringClass && (call.Name == "print" || call.Name == "println"))
		if !ok {
			return diagnostics.Newf(diagnostics.UnknownMethod,
				"built-in class %s has no method %s", t, call.Name)
		}
		if len(call.Args) != 0 {
			return diagnostics.Newf(diagnostics.BuiltinArityMismatch,
				"%s.%s takes no arguments, got %d", t, call.Name, len(call.Args))
		}
		return nil
	}

	decl := c.classes.Lookup(t)
	if decl == nil {
		return diagnostics.Newf(diagnostics.UnknownClass, "unknown class %s", t)
	}
	meth, _ := c.classes.FindMethod(call.Name, decl)
	if meth == nil {
		return diagnostics.Newf(diagnostics.UnknownMethod,
			"class %s has no method %s", t, call.Name)
	}
	return c.checkArgs(env, call.Args, meth.Params, t+"."+call.Name)
}

// checkArgs verifies arity and pairwise compatibility of call arguments.
func (c *checker) checkArgs(env typesystem.Env, args []ast.Expr, params []*ast.Param, callee string) error {
	if len(args) != len(params) {
		return diagnostics.Newf(diagnostics.TypeMismatch,
			"%s takes %d argument(s), got %d", callee, len(params), len(args))
	}
	for i, arg := range args {
		if err := c.checkExpr(env, arg); err != nil {
			return err
		}
		argType := typesystem.ExprType(env, c.classes, arg)
		ok, err := c.compatible(argType, params[i].ClassName)
		if err != nil {
			return err
		}
		if !ok {
			return diagnostics.Newf(diagnostics.TypeMismatch,
				"%s expects %s for parameter %s, got %s",
				callee, params[i].ClassName, params[i].Name, argType)
		}
	}
	return nil
}
