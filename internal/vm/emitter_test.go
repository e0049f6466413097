package vm

import (
	"errors"
	"strings"
	"testing"
)

func TestFreshLabelsAreUnique(t *testing.T) {
	em := NewEmitter(&strings.Builder{})
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		l := em.FreshLabel()
		if seen[l] {
			t.Fatalf("label %s handed out twice", l)
		}
		seen[l] = true
	}
}

func TestEmitterFormats(t *testing.T) {
	var sb strings.Builder
	em := NewEmitter(&sb)
	em.Pushi(42)
	em.Pushs("a\"b\n")
	em.Label("lbl0")
	em.Comment("hello")
	em.Jz("lbl0")

	want := "PUSHI 42\n" +
		"PUSHS \"a\\\"b\\n\"\n" +
		"lbl0: NOP\n" +
		"-- hello\n" +
		"JZ lbl0\n"
	if sb.String() != want {
		t.Errorf("emitted:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestEmitterCommentsDisabled(t *testing.T) {
	var sb strings.Builder
	em := NewEmitter(&sb)
	em.SetComments(false)
	em.Comment("invisible")
	em.Nop()
	if sb.String() != "NOP\n" {
		t.Errorf("emitted %q, want NOP only", sb.String())
	}
}

type failWriter struct{ err error }

func (w *failWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestEmitterStickyError(t *testing.T) {
	boom := errors.New("boom")
	em := NewEmitter(&failWriter{err: boom})
	em.Pushi(1)
	em.Pushi(2)
	if !errors.Is(em.Err(), boom) {
		t.Fatalf("Err() = %v, want boom", em.Err())
	}
}
