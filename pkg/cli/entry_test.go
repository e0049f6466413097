package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const okProgram = `{
  "decls": [],
  "instr": {
    "kind": "block",
    "body": [
      {"kind": "expr", "e": {"kind": "call", "recv": {"kind": "string", "value": "hi"}, "name": "println", "args": []}}
    ]
  }
}`

const badProgram = `{
  "decls": [],
  "instr": {
    "kind": "block",
    "body": [
      {"kind": "expr", "e": {"kind": "id", "name": "ghost"}}
    ]
  }
}`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEntryCompiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.vm")
	var stderr strings.Builder
	code := Entry(Args{Input: writeInput(t, okProgram), Output: out}, &stderr)
	if code != ExitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	emitted, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(emitted)
	for _, want := range []string{"START\n", "PUSHS \"hi\"\n", "WRITES\n", "STOP\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("output is missing %q:\n%s", want, text)
		}
	}
}

func TestEntryNoComments(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.vm")
	var stderr strings.Builder
	code := Entry(Args{Input: writeInput(t, okProgram), Output: out, NoComments: true}, &stderr)
	if code != ExitOK {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	emitted, _ := os.ReadFile(out)
	if strings.Contains(string(emitted), "--") {
		t.Errorf("comments present despite NoComments:\n%s", emitted)
	}
}

// A contextual error reaches stderr with its category and nothing is
// written to the output file.
func TestEntryContextualError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "prog.vm")
	var stderr strings.Builder
	code := Entry(Args{Input: writeInput(t, badProgram), Output: out}, &stderr)
	if code != ExitContextual {
		t.Fatalf("exit code %d, want %d", code, ExitContextual)
	}
	if !strings.Contains(stderr.String(), "UnknownIdentifier") {
		t.Errorf("stderr = %q, want the error category", stderr.String())
	}
	emitted, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(emitted) != 0 {
		t.Errorf("output written despite checker failure:\n%s", emitted)
	}
}

func TestEntryBadInput(t *testing.T) {
	var stderr strings.Builder
	code := Entry(Args{Input: writeInput(t, "{ not json")}, &stderr)
	if code != ExitUsage {
		t.Fatalf("exit code %d, want %d", code, ExitUsage)
	}
}
