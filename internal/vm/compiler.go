package vm

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/symbols"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

// Compiler walks a checked AST and emits the VM program. It assumes the
// contextual checker accepted the tree. Unknown classes, unknown node types
// and unresolvable super calls are reported as internal errors; other
// violations, such as an unbound identifier or an unknown attribute or
// method, are not detected here.
type Compiler struct {
	classes *symbols.ClassTable
	em      *Emitter
}

// NewCompiler returns a compiler writing through em.
func NewCompiler(classes *symbols.ClassTable, em *Emitter) *Compiler {
	return &Compiler{classes: classes, em: em}
}

// Compile emits the whole program: vtables and the static region first,
// then the top-level statement between START and STOP, then the code of
// every constructor and method in declaration order.
func (c *Compiler) Compile(p *ast.Program) error {
	c.em.Comment("generated by turbo-katana")

	for _, decl := range p.Decls {
		c.em.Comment("vtable " + decl.Name)
		vt := MakeVtable(c.classes, decl)
		c.em.Alloc(len(vt))
		for i, entry := range vt {
			c.em.Dupn(1)
			c.em.Pusha(MethodLabel(entry.Class, entry.Method))
			c.em.Store(i)
		}
	}

	c.em.Pushn(TotalStatics(c.classes))

	c.em.Start()
	if err := c.compileStatement(newMainFrame(), typesystem.Env{}, p.Instr); err != nil {
		return err
	}
	c.em.Stop()

	for _, decl := range p.Decls {
		if err := c.compileCtor(decl); err != nil {
			return err
		}
		for _, meth := range decl.InstMethods {
			if err := c.compileMethod(decl, meth); err != nil {
				return err
			}
		}
		for _, meth := range decl.StaticMethods {
			if err := c.compileStaticMethod(decl, meth); err != nil {
				return err
			}
		}
	}
	return c.em.Err()
}

// classEnv seeds the lexical environment of a member of decl.
func (c *Compiler) classEnv(decl *ast.ClassDecl) typesystem.Env {
	env := typesystem.Env{typesystem.ThisName: decl.Name}
	if decl.Super != nil {
		env[typesystem.SuperName] = decl.Super.Name
	}
	return env
}

// compileCtor emits a constructor: the chained superclass constructor call
// first, then the body. The superclass arguments are evaluated in the
// derived constructor's parameter scope.
func (c *Compiler) compileCtor(decl *ast.ClassDecl) error {
	ctor := decl.Ctor
	c.em.Comment("constructor " + decl.Name)
	c.em.Label(CtorLabel(decl.Name))

	fr := newCtorFrame(ctor.Params)
	env := c.classEnv(decl)
	for _, p := range ctor.Params {
		env[p.Name] = p.ClassName
	}

	if decl.Super != nil {
		c.em.Pushl(fr.addrs[typesystem.ThisName])
		for _, arg := range decl.Super.Args {
			if err := c.compileExpression(fr, env, arg); err != nil {
				return err
			}
		}
		c.em.Pusha(CtorLabel(decl.Super.Name))
		c.em.Call()
		c.em.Popn(len(decl.Super.Args) + 1)
	}

	if err := c.compileStatement(fr, env, ctor.Body); err != nil {
		return err
	}
	c.em.Return()
	return nil
}

func (c *Compiler) compileMethod(decl *ast.ClassDecl, meth *ast.MethodDecl) error {
	c.em.Comment("method " + decl.Name + "." + meth.Name)
	c.em.Label(MethodLabel(decl.Name, meth.Name))

	fr := newMethodFrame(meth.Params, meth.RetType != "")
	env := c.classEnv(decl)
	for _, p := range meth.Params {
		env[p.Name] = p.ClassName
	}
	if meth.RetType != "" {
		env[typesystem.ResultName] = meth.RetType
	}

	if err := c.compileStatement(fr, env, meth.Body); err != nil {
		return err
	}
	c.em.Return()
	return nil
}

func (c *Compiler) compileStaticMethod(decl *ast.ClassDecl, meth *ast.MethodDecl) error {
	c.em.Comment("static method " + decl.Name + "." + meth.Name)
	c.em.Label(MethodLabel(decl.Name, meth.Name))

	fr := newStaticFrame(meth.Params, meth.RetType != "")
	env := typesystem.Env{}
	for _, p := range meth.Params {
		env[p.Name] = p.ClassName
	}
	if meth.RetType != "" {
		env[typesystem.ResultName] = meth.RetType
	}

	if err := c.compileStatement(fr, env, meth.Body); err != nil {
		return err
	}
	c.em.Return()
	return nil
}

// typeOf is the shared expression-typing shorthand of the generator.
func (c *Compiler) typeOf(env typesystem.Env, e ast.Expr) string {
	return typesystem.ExprType(env, c.classes, e)
}
