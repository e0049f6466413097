package analyzer

import (
	"github.com/OopsOverflow/turbo-katana/internal/ast"
	"github.com/OopsOverflow/turbo-katana/internal/diagnostics"
	"github.com/OopsOverflow/turbo-katana/internal/typesystem"
)

// checkDecl verifies one class declaration: member naming, the constructor,
// override discipline and every method body.
func (c *checker) checkDecl(decl *ast.ClassDecl) error {
	if err := checkReservedParams("class "+decl.Name, decl.InstAttrs); err != nil {
		return err
	}
	if err := checkReservedParams("class "+decl.Name, decl.StaticAttrs); err != nil {
		return err
	}
	if err := c.checkNoDupMembers(decl); err != nil {
		return err
	}
	if err := c.checkCtor(decl); err != nil {
		return err
	}
	if err := c.checkOverrides(decl); err != nil {
		return err
	}
	for _, meth := range decl.InstMethods {
		if err := c.checkMethod(decl, meth, false); err != nil {
			return err
		}
	}
	for _, meth := range decl.StaticMethods {
		if err := c.checkMethod(decl, meth, true); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkNoDupMembers(decl *ast.ClassDecl) error {
	groups := []struct {
		what  string
		names []string
	}{
		{"instance attribute", paramNames(decl.InstAttrs)},
		{"static attribute", paramNames(decl.StaticAttrs)},
		{"instance method", methodNames(decl.InstMethods)},
		{"static method", methodNames(decl.StaticMethods)},
	}
	for _, g := range groups {
		seen := make(map[string]bool, len(g.names))
		for _, name := range g.names {
			if seen[name] {
				return diagnostics.Newf(diagnostics.DuplicateMember,
					"class %s declares %s %s more than once", decl.Name, g.what, name)
			}
			seen[name] = true
		}
	}
	return nil
}

func paramNames(ps []*ast.Param) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func methodNames(ms []*ast.MethodDecl) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

// checkCtor verifies the constructor name, its parameters, the superclass
// arguments and the body.
func (c *checker) checkCtor(decl *ast.ClassDecl) error {
	ctor := decl.Ctor
	if ctor.Name != decl.Name {
		return diagnostics.Newf(diagnostics.CtorNameMismatch,
			"constructor of class %s is named %s", decl.Name, ctor.Name)
	}
	if err := checkReservedParams("constructor of "+decl.Name, ctor.Params); err != nil {
		return err
	}

	env := c.classEnv(decl)
	for _, p := range ctor.Params {
		env[p.Name] = p.ClassName
	}

	if decl.Super != nil {
		super := c.classes.Lookup(decl.Super.Name)
		if super == nil {
			return diagnostics.Newf(diagnostics.UnknownClass,
				"class %s extends unknown class %s", decl.Name, decl.Super.Name)
		}
		if err := c.checkCtorArgs(env, decl.Super.Args, super.Ctor.Params,
			decl.Name, decl.Super.Name); err != nil {
			return err
		}
	}
	return c.checkStmt(env, ctor.Body)
}

// checkCtorArgs type-checks constructor arguments against the target
// constructor's parameters. Used for super clauses and new expressions.
func (c *checker) checkCtorArgs(env typesystem.Env, args []ast.Expr, params []*ast.Param, from, target string) error {
	if len(args) != len(params) {
		return diagnostics.Newf(diagnostics.CtorArgMismatch,
			"%s passes %d argument(s) to constructor of %s, which takes %d",
			from, len(args), target, len(params))
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
			return diagnostics.Newf(diagnostics.CtorArgMismatch,
				"constructor of %s expects %s for parameter %s, got %s",
				target, params[i].ClassName, params[i].Name, argType)
		}
	}
	return nil
}

// checkOverrides enforces the override discipline: a method shadowing an
// ancestor must be marked override with an identical parameter list, and
// override marks without an ancestor match are rejected.
func (c *checker) checkOverrides(decl *ast.ClassDecl) error {
	if decl.Super == nil {
		for _, m := range decl.InstMethods {
			if m.Override {
				return diagnostics.Newf(diagnostics.OverrideMissing,
					"method %s.%s is marked override but %s has no superclass",
					decl.Name, m.Name, decl.Name)
			}
		}
		return nil
	}
	super := c.classes.Lookup(decl.Super.Name)
	for _, m := range decl.InstMethods {
		base, _ := c.classes.FindMethod(m.Name, super)
		if base == nil {
			if m.Override {
				return diagnostics.Newf(diagnostics.OverrideMissing,
					"method %s.%s is marked override but no ancestor declares %s",
					decl.Name, m.Name, m.Name)
			}
			continue
		}
		if !m.Override {
			return diagnostics.Newf(diagnostics.OverrideRequired,
				"method %s.%s shadows an inherited method and must be marked override",
				decl.Name, m.Name)
		}
		if !sameSignature(m.Params, base.Params) {
			return diagnostics.Newf(diagnostics.OverrideSignatureMismatch,
				"method %s.%s does not match the overridden signature",
				decl.Name, m.Name)
		}
	}
	return nil
}

func sameSignature(a, b []*ast.Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ClassName != b[i].ClassName {
			return false
		}
	}
	return true
}

// checkMethod verifies parameter naming, the body and, for value-returning
// methods, the return-path discipline.
func (c *checker) checkMethod(decl *ast.ClassDecl, meth *ast.MethodDecl, static bool) error {
	where := "method " + decl.Name + "." + meth.Name
	if err := checkReservedParams(where, meth.Params); err != nil {
		return err
	}

	var env typesystem.Env
	if static {
		env = typesystem.Env{}
	} else {
		env = c.classEnv(decl)
	}
	for _, p := range meth.Params {
		env[p.Name] = p.ClassName
	}
	if meth.RetType != "" {
		env[typesystem.ResultName] = meth.RetType
	}

	if err := c.checkStmt(env, meth.Body); err != nil {
		return err
	}
	if meth.RetType != "" {
		if err := c.checkReturns(decl, meth); err != nil {
			return err
		}
	}
	return nil
}

// classEnv seeds an environment with the class bindings: this, and super
// when the class is derived.
func (c *checker) classEnv(decl *ast.ClassDecl) typesystem.Env {
	env := typesystem.Env{typesystem.ThisName: decl.Name}
	if decl.Super != nil {
		env[typesystem.SuperName] = decl.Super.Name
	}
	return env
}
