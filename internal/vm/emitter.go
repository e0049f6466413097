package vm

import (
	"fmt"
	"io"
	"strconv"
)

// Emitter writes one instruction per line to its destination and hands out
// fresh jump labels. It never reorders or buffers; the first write error
// sticks and turns later emits into no-ops.
type Emitter struct {
	w        io.Writer
	next     int
	comments bool
	err      error
}

// NewEmitter returns an emitter over w with its label counter at zero.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w, comments: true}
}

// SetComments toggles comment lines. Instructions are unaffected.
func (e *Emitter) SetComments(on bool) { e.comments = on }

// Err returns the first write error, if any.
func (e *Emitter) Err() error { return e.err }

// FreshLabel returns a label unused in this emission.
func (e *Emitter) FreshLabel() string {
	l := fmt.Sprintf("lbl%d", e.next)
	e.next++
	return l
}

func (e *Emitter) line(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.w, s+"\n"); err != nil {
		e.err = err
	}
}

// Label emits a label definition.
func (e *Emitter) Label(name string) { e.line(name + ": " + opNOP) }

// Comment emits a comment line when comments are enabled.
func (e *Emitter) Comment(text string) {
	if e.comments {
		e.line("-- " + text)
	}
}

func (e *Emitter) simple(mnemonic string)        { e.line(mnemonic) }
func (e *Emitter) withInt(mnemonic string, n int) { e.line(mnemonic + " " + strconv.Itoa(n)) }

func (e *Emitter) Nop()   { e.simple(opNOP) }
func (e *Emitter) Start() { e.simple(opSTART) }
func (e *Emitter) Stop()  { e.simple(opSTOP) }

// EmitErr emits the VM abort instruction.
func (e *Emitter) EmitErr(msg string) { e.line(opERR + " " + strconv.Quote(msg)) }

func (e *Emitter) Pushi(n int)       { e.withInt(opPUSHI, n) }
func (e *Emitter) Pushs(s string)    { e.line(opPUSHS + " " + strconv.Quote(s)) }
func (e *Emitter) Pushg(n int)       { e.withInt(opPUSHG, n) }
func (e *Emitter) Pushl(n int)       { e.withInt(opPUSHL, n) }
func (e *Emitter) Pushsp()           { e.simple(opPUSHSP) }
func (e *Emitter) Pushfp(n int)      { e.withInt(opPUSHFP, n) }
func (e *Emitter) Storel(n int)      { e.withInt(opSTOREL, n) }
func (e *Emitter) Storeg(n int)      { e.withInt(opSTOREG, n) }
func (e *Emitter) Pushn(n int)       { e.withInt(opPUSHN, n) }
func (e *Emitter) Popn(n int)        { e.withInt(opPOPN, n) }
func (e *Emitter) Dupn(n int)        { e.withInt(opDUPN, n) }
func (e *Emitter) Swap()             { e.simple(opSWAP) }
func (e *Emitter) Equal()            { e.simple(opEQUAL) }
func (e *Emitter) Not()              { e.simple(opNOT) }
func (e *Emitter) Inf()              { e.simple(opINF) }
func (e *Emitter) Infeq()            { e.simple(opINFEQ) }
func (e *Emitter) Sup()              { e.simple(opSUP) }
func (e *Emitter) Supeq()            { e.simple(opSUPEQ) }
func (e *Emitter) Add()              { e.simple(opADD) }
func (e *Emitter) Sub()              { e.simple(opSUB) }
func (e *Emitter) Mul()              { e.simple(opMUL) }
func (e *Emitter) Div()              { e.simple(opDIV) }
func (e *Emitter) Concat()           { e.simple(opCONCAT) }
func (e *Emitter) Str()              { e.simple(opSTR) }
func (e *Emitter) Writei()           { e.simple(opWRITEI) }
func (e *Emitter) Writes()           { e.simple(opWRITES) }
func (e *Emitter) Jump(label string) { e.line(opJUMP + " " + label) }
func (e *Emitter) Jz(label string)   { e.line(opJZ + " " + label) }
func (e *Emitter) Pusha(label string) { e.line(opPUSHA + " " + label) }
func (e *Emitter) Call()             { e.simple(opCALL) }
func (e *Emitter) Return()           { e.simple(opRETURN) }
func (e *Emitter) Store(n int)       { e.withInt(opSTORE, n) }
func (e *Emitter) Load(n int)        { e.withInt(opLOAD, n) }
func (e *Emitter) Alloc(n int)       { e.withInt(opALLOC, n) }
