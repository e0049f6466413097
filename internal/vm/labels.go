package vm

import "fmt"

// MethodLabel mangles a method into its code label. Instance and static
// methods share the scheme; the target machine has a single flat label
// space.
func MethodLabel(className, methName string) string {
	return fmt.Sprintf("%s_%d_%s", className, len(methName), methName)
}

// CtorLabel mangles a class constructor into its code label.
func CtorLabel(className string) string {
	return fmt.Sprintf("_CTOR_%s_", className)
}
