package analyzer

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/diagnostics"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

func (c *checker) checkStmt(env typesystem.Env, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		if err := checkReservedParams("block", s.Vars); err != nil {
			return err
		}
		scope := env.Clone()
		for _, v := range s.Vars {
			scope[v.Name] = v.ClassName
		}
		for _, inner := range s.Body {
			if err := c.checkStmt(scope, inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.Assign:
		return c.checkAssign(env, s)

	case *ast.Ite:
		if err := c.checkExpr(env, s.Cond); err != nil {
			return err
		}
		if t := typesystem.ExprType(env, c.classes, s.Cond); t != typesystem.IntegerClass {
			return diagnostics.Newf(diagnostics.ConditionNotInteger,
				"if condition has type %s, want Integer", t)
		}
		if err := c.checkStmt(env, s.Then); err != nil {
			return err
		}
		return c.checkStmt(env, s.Else)

	case *ast.Return:
		return nil

	case *ast.ExprStmt:
		return c.checkExpr(env, s.E)

	default:
		return diagnostics.Newf(diagnostics.TypeMismatch, "unknown statement %T", stmt)
	}
}

func (c *checker) checkAssign(env typesystem.Env, s *ast.Assign) error {
	switch lhs := s.LHS.(type) {
	case *ast.Ident:
		if lhs.Name == typesystem.ThisName || lhs.Name == typesystem.SuperName {
			return diagnostics.Newf(diagnostics.AssignToReserved,
				"cannot assign to %s", lhs.Name)
		}
	case *ast.AttrAccess, *ast.StaticAttrAccess:
	default:
		return diagnostics.Newf(diagnostics.AssignToNonLValue,
			"left-hand side of assignment is not assignable")
	}

	if err := c.checkExpr(env, s.LHS); err != nil {
		return err
	}
	if err := c.checkExpr(env, s.RHS); err != nil {
		return err
	}

	lhsType := typesystem.ExprType(env, c.classes, s.LHS)
	rhsType := typesystem.ExprType(env, c.classes, s.RHS)
	if lhsType == typesystem.VoidType {
		return diagnostics.Newf(diagnostics.AssignVoid,
			"left-hand side of assignment has no value")
	}
	if rhsType == typesystem.VoidType {
		return diagnostics.Newf(diagnostics.AssignVoid,
			"right-hand side of assignment has no value")
	}
	ok, err := c.compatible(rhsType, lhsType)
	if err != nil {
		return err
	}
	if !ok {
		return diagnostics.Newf(diagnostics.TypeMismatch,
			"cannot assign %s to %s", rhsType, lhsType)
	}
	return nil
}
