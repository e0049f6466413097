// Package diagnostics defines the error surface of the contextual checker.
// Every rule violation is reported as a ContextualError carrying one of the
// closed set of category codes below; the checker never produces ad-hoc
// errors.
package diagnostics

import (
	"errors"
	"fmt"
)

// Code identifies the logical category of a contextual error.
type Code string

const (
	ReservedName              Code = "ReservedName"
	DuplicateClass            Code = "DuplicateClass"
	UnknownClass              Code = "UnknownClass"
	InheritanceCycle          Code = "InheritanceCycle"
	ReservedClassName         Code = "ReservedClassName"
	DuplicateMember           Code = "DuplicateMember"
	OverrideMissing           Code = "OverrideMissing"
	OverrideRequired          Code = "OverrideRequired"
	OverrideSignatureMismatch Code = "OverrideSignatureMismatch"
	UnknownIdentifier         Code = "UnknownIdentifier"
	UnknownAttribute          Code = "UnknownAttribute"
	UnknownStaticAttribute    Code = "UnknownStaticAttribute"
	UnknownMethod             Code = "UnknownMethod"
	UnknownStaticMethod       Code = "UnknownStaticMethod"
	BuiltinArityMismatch      Code = "BuiltinArityMismatch"
	AssignToReserved          Code = "AssignToReserved"
	AssignToNonLValue         Code = "AssignToNonLValue"
	AssignVoid                Code = "AssignVoid"
	TypeMismatch              Code = "TypeMismatch"
	ConditionNotInteger       Code = "ConditionNotInteger"
	OperandsNotInteger        Code = "OperandsNotInteger"
	OperandsNotString         Code = "OperandsNotString"
	CtorNameMismatch          Code = "CtorNameMismatch"
	CtorArgMismatch           Code = "CtorArgMismatch"
	SuperMissing              Code = "SuperMissing"
	CastNotUpCast             Code = "CastNotUpCast"
	MissingReturnPath         Code = "MissingReturnPath"
)

// ContextualError is the single error kind produced by the checker.
type ContextualError struct {
	Code    Code
	Message string
}

func (e *ContextualError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Newf builds a ContextualError with a formatted message.
func Newf(code Code, format string, args ...any) *ContextualError {
	return &ContextualError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsContextual unwraps err into a ContextualError when it carries one.
func AsContextual(err error) (*ContextualError, bool) {
	var ce *ContextualError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
