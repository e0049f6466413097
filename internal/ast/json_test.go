package ast

import (
	"strings"
	"testing"
)

const sampleProgram = `{
  "decls": [
    {
      "name": "Counter",
      "ctor": {
        "name": "Counter",
        "params": [{"name": "start", "class": "Integer"}],
        "body": {
          "kind": "block",
          "body": [
            {
              "kind": "assign",
              "lhs": {"kind": "attr", "recv": {"kind": "id", "name": "this"}, "name": "value"},
              "rhs": {"kind": "id", "name": "start"}
            }
          ]
        }
      },
      "instAttrs": [{"name": "value", "class": "Integer"}],
      "instMethods": [
        {
          "name": "next",
          "ret": "Integer",
          "body": {
            "kind": "block",
            "body": [
              {
                "kind": "assign",
                "lhs": {"kind": "id", "name": "result"},
                "rhs": {
                  "kind": "binop",
                  "op": "+",
                  "left": {"kind": "attr", "recv": {"kind": "id", "name": "this"}, "name": "value"},
                  "right": {"kind": "cste", "value": 1}
                }
              }
            ]
          }
        }
      ]
    }
  ],
  "instr": {
    "kind": "block",
    "vars": [{"name": "c", "class": "Counter"}],
    "body": [
      {
        "kind": "assign",
        "lhs": {"kind": "id", "name": "c"},
        "rhs": {"kind": "new", "class": "Counter", "args": [{"kind": "cste", "value": 0}]}
      },
      {
        "kind": "ite",
        "cond": {"kind": "call", "recv": {"kind": "id", "name": "c"}, "name": "next", "args": []},
        "then": {"kind": "expr", "e": {"kind": "call", "recv": {"kind": "string", "value": "up"}, "name": "println", "args": []}},
        "else": {"kind": "return"}
      }
    ]
  }
}`

func TestDecodeProgram(t *testing.T) {
	prog, err := DecodeProgram(strings.NewReader(sampleProgram))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("decoded %d classes, want 1", len(prog.Decls))
	}
	counter := prog.Decls[0]
	if counter.Name != "Counter" || counter.Super != nil {
		t.Errorf("class header = %q super=%v", counter.Name, counter.Super)
	}
	if len(counter.Ctor.Params) != 1 || counter.Ctor.Params[0].ClassName != "Integer" {
		t.Errorf("ctor params = %+v", counter.Ctor.Params)
	}
	if len(counter.InstMethods) != 1 || counter.InstMethods[0].RetType != "Integer" {
		t.Fatalf("methods = %+v", counter.InstMethods)
	}

	blk, ok := prog.Instr.(*Block)
	if !ok {
		t.Fatalf("instr is %T, want *Block", prog.Instr)
	}
	if len(blk.Vars) != 1 || blk.Vars[0].ClassName != "Counter" {
		t.Errorf("block vars = %+v", blk.Vars)
	}
	ite, ok := blk.Body[1].(*Ite)
	if !ok {
		t.Fatalf("second statement is %T, want *Ite", blk.Body[1])
	}
	if _, ok := ite.Else.(*Return); !ok {
		t.Errorf("else branch is %T, want *Return", ite.Else)
	}
	call, ok := ite.Cond.(*MethodCall)
	if !ok || call.Name != "next" {
		t.Errorf("condition = %#v", ite.Cond)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := DecodeProgram(strings.NewReader(`{"decls": [], "instr": {"kind": "goto"}}`))
	if err == nil || !strings.Contains(err.Error(), "goto") {
		t.Fatalf("expected unknown-kind error, got %v", err)
	}
}

func TestDecodeMissingKind(t *testing.T) {
	_, err := DecodeProgram(strings.NewReader(`{"decls": [], "instr": {}}`))
	if err == nil {
		t.Fatal("expected error for missing kind")
	}
}

func TestDecodeMissingCtor(t *testing.T) {
	_, err := DecodeProgram(strings.NewReader(
		`{"decls": [{"name": "A"}], "instr": {"kind": "block"}}`))
	if err == nil || !strings.Contains(err.Error(), "constructor") {
		t.Fatalf("expected missing-constructor error, got %v", err)
	}
}
