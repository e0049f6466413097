package analyzer

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/diagnostics"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

// checkReturns verifies that every control-flow path through a
// value-returning method assigns result or returns explicitly.
func (c *checker) checkReturns(decl *ast.ClassDecl, meth *ast.MethodDecl) error {
	if !pathSatisfied(meth.Body) {
		return diagnostics.Newf(diagnostics.MissingReturnPath,
			"method %s.%s does not assign result on every path", decl.Name, meth.Name)
	}
	return nil
}

// pathSatisfied reports whether a statement guarantees that result was
// assigned or the method returned. A block is satisfied by a Return or by
// any satisfied statement before the first Return; a conditional needs both
// branches satisfied.
func pathSatisfied(stmt ast.Stmt) bool {
	switch s := stmt.(type) {
	case *ast.Assign:
		id, ok := s.LHS.(*ast.Ident)
		return ok && id.Name == typesystem.ResultName
	case *ast.Return:
		return true
	case *ast.Block:
		for _, inner := range s.Body {
			if _, isReturn := inner.(*ast.Return); isReturn {
				return true
			}
			if pathSatisfied(inner) {
				return true
			}
		}
		return false
	case *ast.Ite:
		return pathSatisfied(s.Then) && pathSatisfied(s.Else)
	default:
		return false
	}
}
