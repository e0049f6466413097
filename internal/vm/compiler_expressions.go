package vm

import (
	"fmt"

	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

// compileExpression emits an expression; the net stack effect is one pushed
// value.
func (c *Compiler) compileExpression(fr *frame, env typesystem.Env, e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Ident:
		// super denotes this viewed as the superclass; it shares this's
		// slot and only its static type differs.
		if n.Name == typesystem.SuperName {
			c.em.Pushl(fr.addrs[typesystem.ThisName])
		} else {
			c.em.Pushl(fr.addrs[n.Name])
		}
		return nil

	case *ast.IntLit:
		c.em.Pushi(n.Value)
		return nil

	case *ast.StrLit:
		c.em.Pushs(n.Value)
		return nil

	case *ast.UnaryMinus:
		c.em.Pushi(0)
		if err := c.compileExpression(fr, env, n.Operand); err != nil {
			return err
		}
		c.em.Sub()
		return nil

	case *ast.BinOp:
		if err := c.compileExpression(fr, env, n.Left); err != nil {
			return err
		}
		if err := c.compileExpression(fr, env, n.Right); err != nil {
			return err
		}
		return c.compileOperator(n.Op)

	case *ast.StrCat:
		if err := c.compileExpression(fr, env, n.Left); err != nil {
			return err
		}
		if err := c.compileExpression(fr, env, n.Right); err != nil {
			return err
		}
		c.em.Concat()
		return nil

	case *ast.AttrAccess:
		if err := c.compileExpression(fr, env, n.Recv); err != nil {
			return err
		}
		c.em.Load(AttrOffset(c.classes, c.typeOf(env, n.Recv), n.Name))
		return nil

	case *ast.StaticAttrAccess:
		c.em.Pushg(StaticAttrOffset(c.classes, n.ClassName, n.Name))
		return nil

	case *ast.MethodCall:
		return c.compileCall(fr, env, n)

	case *ast.StaticCall:
		c.em.Pushi(0)
		for _, arg := range n.Args {
			if err := c.compileExpression(fr, env, arg); err != nil {
				return err
			}
		}
		c.em.Pusha(MethodLabel(n.ClassName, n.Name))
		c.em.Call()
		c.em.Popn(len(n.Args))
		return nil

	case *ast.New:
		return c.compileNew(fr, env, n)

	case *ast.Cast:
		// Up-casts only; nothing to do at runtime.
		return c.compileExpression(fr, env, n.Operand)

	default:
		return fmt.Errorf("unknown expression type: %T", e)
	}
}

func (c *Compiler) compileOperator(op ast.Op) error {
	switch op {
	case ast.OpEq:
		c.em.Equal()
	case ast.OpNeq:
		c.em.Equal()
		c.em.Not()
	case ast.OpLt:
		c.em.Inf()
	case ast.OpLe:
		c.em.Infeq()
	case ast.OpGt:
		c.em.Sup()
	case ast.OpGe:
		c.em.Supeq()
	case ast.OpAdd:
		c.em.Add()
	case ast.OpSub:
		c.em.Sub()
	case ast.OpMul:
		c.em.Mul()
	case ast.OpDiv:
		c.em.Div()
	default:
		return fmt.Errorf("unknown operator %d", op)
	}
	return nil
}

// compileCall dispatches a method call: built-ins inline, super calls
// statically, everything else through the receiver's vtable.
func (c *Compiler) compileCall(fr *frame, env typesystem.Env, call *ast.MethodCall) error {
	if recv, ok := call.Recv.(*ast.Ident); ok && recv.Name == typesystem.SuperName {
		return c.compileSuperCall(fr, env, call)
	}

	recvType := c.typeOf(env, call.Recv)
	switch recvType {
	case typesystem.IntegerClass:
		// toString is the only Integer method.
		if err := c.compileExpression(fr, env, call.Recv); err != nil {
			return err
		}
		c.em.Str()
		return nil

	case typesystem.StringClass:
		if err := c.compileExpression(fr, env, call.Recv); err != nil {
			return err
		}
		c.em.Dupn(1)
		c.em.Writes()
		if call.Name == "println" {
			c.em.Pushs("\n")
			c.em.Writes()
		}
		return nil
	}

	// Virtual dispatch: result cell, arguments, receiver, then the code
	// address fetched from the receiver's vtable.
	c.em.Pushi(0)
	for _, arg := range call.Args {
		if err := c.compileExpression(fr, env, arg); err != nil {
			return err
		}
	}
	if err := c.compileExpression(fr, env, call.Recv); err != nil {
		return err
	}
	decl := c.classes.Lookup(recvType)
	if decl == nil {
		return fmt.Errorf("call on unknown class %s", recvType)
	}
	vt := MakeVtable(c.classes, decl)
	c.em.Dupn(1)
	c.em.Load(0)
	c.em.Load(vt.Offset(call.Name))
	c.em.Call()
	c.em.Popn(len(call.Args) + 1)
	return nil
}

// compileSuperCall emits a statically bound call to the method the
// superclass chain defines; the receiver is this.
func (c *Compiler) compileSuperCall(fr *frame, env typesystem.Env, call *ast.MethodCall) error {
	superDecl := c.classes.Lookup(env[typesystem.SuperName])
	if superDecl == nil {
		return fmt.Errorf("super call outside a derived class")
	}
	meth, owner := c.classes.FindMethod(call.Name, superDecl)
	if meth == nil {
		return fmt.Errorf("super call to unknown method %s", call.Name)
	}

	c.em.Pushi(0)
	for _, arg := range call.Args {
		if err := c.compileExpression(fr, env, arg); err != nil {
			return err
		}
	}
	c.em.Pushl(fr.addrs[typesystem.ThisName])
	c.em.Pusha(MethodLabel(owner.Name, call.Name))
	c.em.Call()
	c.em.Popn(len(call.Args) + 1)
	return nil
}

// compileNew allocates the object, plants the vtable pointer in slot 0 and
// runs the constructor on it.
func (c *Compiler) compileNew(fr *frame, env typesystem.Env, n *ast.New) error {
	decl := c.classes.Lookup(n.ClassName)
	if decl == nil {
		return fmt.Errorf("new of unknown class %s", n.ClassName)
	}

	c.em.Alloc(len(AllAttrs(c.classes, decl)) + 1)
	c.em.Dupn(1)
	c.em.Pushg(VtableGlobal(c.classes, n.ClassName))
	c.em.Store(0)
	for _, arg := range n.Args {
		if err := c.compileExpression(fr, env, arg); err != nil {
			return err
		}
	}
	c.em.Pusha(CtorLabel(n.ClassName))
	c.em.Call()
	c.em.Popn(len(n.Args))
	return nil
}
