package vm

import (
	"fmt"

	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

// compileStatement emits a statement. Every statement is stack-neutral: it
// pops exactly what it pushes.
func (c *Compiler) compileStatement(fr *frame, env typesystem.Env, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return c.compileBlock(fr, env, s)

	case *ast.Assign:
		return c.compileAssign(fr, env, s)

	case *ast.Ite:
		lblElse := c.em.FreshLabel()
		lblEnd := c.em.FreshLabel()
		if err := c.compileExpression(fr, env, s.Cond); err != nil {
			return err
		}
		c.em.Jz(lblElse)
		if err := c.compileStatement(fr, env, s.Then); err != nil {
			return err
		}
		c.em.Jump(lblEnd)
		c.em.Label(lblElse)
		if err := c.compileStatement(fr, env, s.Else); err != nil {
			return err
		}
		c.em.Label(lblEnd)
		return nil

	case *ast.Return:
		c.em.Return()
		return nil

	case *ast.ExprStmt:
		if err := c.compileExpression(fr, env, s.E); err != nil {
			return err
		}
		c.em.Popn(1)
		return nil

	default:
		return fmt.Errorf("unknown statement type: %T", stmt)
	}
}

// compileBlock allocates the block's locals, emits its body and frees the
// locals again. The scope extension is dropped on exit with the clones.
func (c *Compiler) compileBlock(fr *frame, env typesystem.Env, blk *ast.Block) error {
	scope := fr
	scopeEnv := env
	if len(blk.Vars) > 0 {
		scope = fr.clone()
		scopeEnv = env.Clone()
		for _, v := range blk.Vars {
			scope.bind(v.Name)
			scopeEnv[v.Name] = v.ClassName
		}
		c.em.Pushn(len(blk.Vars))
	}
	for _, inner := range blk.Body {
		if err := c.compileStatement(scope, scopeEnv, inner); err != nil {
			return err
		}
	}
	if len(blk.Vars) > 0 {
		c.em.Popn(len(blk.Vars))
	}
	return nil
}

func (c *Compiler) compileAssign(fr *frame, env typesystem.Env, s *ast.Assign) error {
	switch lhs := s.LHS.(type) {
	case *ast.Ident:
		if err := c.compileExpression(fr, env, s.RHS); err != nil {
			return err
		}
		c.em.Storel(fr.addrs[lhs.Name])
		return nil

	case *ast.AttrAccess:
		if err := c.compileExpression(fr, env, lhs.Recv); err != nil {
			return err
		}
		if err := c.compileExpression(fr, env, s.RHS); err != nil {
			return err
		}
		c.em.Store(AttrOffset(c.classes, c.typeOf(env, lhs.Recv), lhs.Name))
		return nil

	case *ast.StaticAttrAccess:
		if err := c.compileExpression(fr, env, s.RHS); err != nil {
			return err
		}
		c.em.Storeg(StaticAttrOffset(c.classes, lhs.ClassName, lhs.Name))
		return nil

	default:
		return fmt.Errorf("assignment target is not an lvalue: %T", s.LHS)
	}
}
