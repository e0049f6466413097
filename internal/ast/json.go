package ast

import (
	"encoding/json"
	"fmt"
	"io"
)

// The parser front-end hands programs to the core as JSON. Statements and
// expressions are encoded as objects with a "kind" discriminator; all other
// nodes map field-for-field onto their struct.

// DecodeProgram reads the JSON encoding of a Program from r.
func DecodeProgram(r io.Reader) (*Program, error) {
	var raw jsonProgram
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	return raw.build()
}

type jsonProgram struct {
	Decls []*jsonClassDecl `json:"decls"`
	Instr json.RawMessage  `json:"instr"`
}

type jsonClassDecl struct {
	Name          string            `json:"name"`
	Super         *jsonSuperCall    `json:"super,omitempty"`
	Ctor          *jsonCtorDecl     `json:"ctor"`
	InstAttrs     []*jsonParam      `json:"instAttrs,omitempty"`
	StaticAttrs   []*jsonParam      `json:"staticAttrs,omitempty"`
	InstMethods   []*jsonMethodDecl `json:"instMethods,omitempty"`
	StaticMethods []*jsonMethodDecl `json:"staticMethods,omitempty"`
}

type jsonSuperCall struct {
	Name string            `json:"name"`
	Args []json.RawMessage `json:"args,omitempty"`
}

type jsonParam struct {
	Name      string `json:"name"`
	ClassName string `json:"class"`
}

type jsonCtorDecl struct {
	Name   string          `json:"name"`
	Params []*jsonParam    `json:"params,omitempty"`
	Body   json.RawMessage `json:"body"`
}

type jsonMethodDecl struct {
	Name     string          `json:"name"`
	Params   []*jsonParam    `json:"params,omitempty"`
	RetType  string          `json:"ret,omitempty"`
	Override bool            `json:"override,omitempty"`
	Body     json.RawMessage `json:"body"`
}

func (p *jsonProgram) build() (*Program, error) {
	prog := &Program{}
	for _, d := range p.Decls {
		decl, err := d.build()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	if len(p.Instr) == 0 {
		return nil, fmt.Errorf("program has no top-level statement")
	}
	instr, err := decodeStmt(p.Instr)
	if err != nil {
		return nil, err
	}
	prog.Instr = instr
	return prog, nil
}

func (d *jsonClassDecl) build() (*ClassDecl, error) {
	decl := &ClassDecl{
		Name:        d.Name,
		InstAttrs:   buildParams(d.InstAttrs),
		StaticAttrs: buildParams(d.StaticAttrs),
	}
	if d.Super != nil {
		args, err := decodeExprs(d.Super.Args)
		if err != nil {
			return nil, fmt.Errorf("class %s super: %w", d.Name, err)
		}
		decl.Super = &SuperCall{Name: d.Super.Name, Args: args}
	}
	if d.Ctor == nil {
		return nil, fmt.Errorf("class %s has no constructor", d.Name)
	}
	body, err := decodeStmt(d.Ctor.Body)
	if err != nil {
		return nil, fmt.Errorf("class %s constructor: %w", d.Name, err)
	}
	decl.Ctor = &CtorDecl{Name: d.Ctor.Name, Params: buildParams(d.Ctor.Params), Body: body}
	for _, m := range d.InstMethods {
		meth, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", d.Name, err)
		}
		decl.InstMethods = append(decl.InstMethods, meth)
	}
	for _, m := range d.StaticMethods {
		meth, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", d.Name, err)
		}
		decl.StaticMethods = append(decl.StaticMethods, meth)
	}
	return decl, nil
}

func (m *jsonMethodDecl) build() (*MethodDecl, error) {
	body, err := decodeStmt(m.Body)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", m.Name, err)
	}
	return &MethodDecl{
		Name:     m.Name,
		Params:   buildParams(m.Params),
		RetType:  m.RetType,
		Override: m.Override,
		Body:     body,
	}, nil
}

func buildParams(ps []*jsonParam) []*Param {
	var out []*Param
	for _, p := range ps {
		out = append(out, &Param{Name: p.Name, ClassName: p.ClassName})
	}
	return out
}

// kindOf peeks at the "kind" discriminator of a raw node.
func kindOf(raw json.RawMessage) (string, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", err
	}
	if probe.Kind == "" {
		return "", fmt.Errorf("node object is missing its \"kind\" field")
	}
	return probe.Kind, nil
}

func decodeStmt(raw json.RawMessage) (Stmt, error) {
	kind, err := kindOf(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "block":
		var n struct {
			Vars []*jsonParam      `json:"vars"`
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		blk := &Block{Vars: buildParams(n.Vars)}
		for _, s := range n.Body {
			stmt, err := decodeStmt(s)
			if err != nil {
				return nil, err
			}
			blk.Body = append(blk.Body, stmt)
		}
		return blk, nil
	case "assign":
		var n struct {
			LHS json.RawMessage `json:"lhs"`
			RHS json.RawMessage `json:"rhs"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		lhs, err := decodeExpr(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := decodeExpr(n.RHS)
		if err != nil {
			return nil, err
		}
		return &Assign{LHS: lhs, RHS: rhs}, nil
	case "return":
		return &Return{}, nil
	case "ite":
		var n struct {
			Cond json.RawMessage `json:"cond"`
			Then json.RawMessage `json:"then"`
			Else json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		cond, err := decodeExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeStmt(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeStmt(n.Else)
		if err != nil {
			return nil, err
		}
		return &Ite{Cond: cond, Then: then, Else: els}, nil
	case "expr":
		var n struct {
			E json.RawMessage `json:"e"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		e, err := decodeExpr(n.E)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{E: e}, nil
	default:
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}
}

var jsonOps = map[string]Op{
	"==": OpEq, "<>": OpNeq, "<": OpLt, "<=": OpLe,
	">": OpGt, ">=": OpGe, "+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv,
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	kind, err := kindOf(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "id":
		var n struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &Ident{Name: n.Name}, nil
	case "cste":
		var n struct {
			Value int `json:"value"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &IntLit{Value: n.Value}, nil
	case "string":
		var n struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &StrLit{Value: n.Value}, nil
	case "attr":
		var n struct {
			Recv json.RawMessage `json:"recv"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		recv, err := decodeExpr(n.Recv)
		if err != nil {
			return nil, err
		}
		return &AttrAccess{Recv: recv, Name: n.Name}, nil
	case "staticAttr":
		var n struct {
			Class string `json:"class"`
			Name  string `json:"name"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return &StaticAttrAccess{ClassName: n.Class, Name: n.Name}, nil
	case "uminus":
		var n struct {
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		op, err := decodeExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryMinus{Operand: op}, nil
	case "binop":
		var n struct {
			Op    string          `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		op, ok := jsonOps[n.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", n.Op)
		}
		left, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &BinOp{Left: left, Op: op, Right: right}, nil
	case "strcat":
		var n struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		left, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &StrCat{Left: left, Right: right}, nil
	case "call":
		var n struct {
			Recv json.RawMessage   `json:"recv"`
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		recv, err := decodeExpr(n.Recv)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &MethodCall{Recv: recv, Name: n.Name, Args: args}, nil
	case "staticCall":
		var n struct {
			Class string            `json:"class"`
			Name  string            `json:"name"`
			Args  []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &StaticCall{ClassName: n.Class, Name: n.Name, Args: args}, nil
	case "new":
		var n struct {
			Class string            `json:"class"`
			Args  []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Args)
		if err != nil {
			return nil, err
		}
		return &New{ClassName: n.Class, Args: args}, nil
	case "cast":
		var n struct {
			Class   string          `json:"class"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		op, err := decodeExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		return &Cast{ClassName: n.Class, Operand: op}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", kind)
	}
}

func decodeExprs(raw []json.RawMessage) ([]Expr, error) {
	var out []Expr
	for _, r := range raw {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
