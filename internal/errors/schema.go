package errors

import (
	"fmt"
	"strings"
)

// Schema-specific error constructors. Every generation failure points at the
// offending declaration element and carries suggestions for fixing it.

// NewSyntaxError creates an error for declaration text that fails the grammar
func NewSyntaxError(message string, loc SourceLocation) *BaseError {
	return New(SyntaxErrorCode, message).
		WithLocation(loc).
		WithSuggestions(
			"Check the declaration against the surface grammar",
			"Ensure braces, brackets, and parentheses are balanced",
		)
}

// NewMalformedInterfaceError creates an error for an interface whose shape
// cannot be turned into a dispatchable schema
func NewMalformedInterfaceError(interfaceName, reason string, loc SourceLocation) *BaseError {
	message := fmt.Sprintf("interface '%s' is malformed: %s", interfaceName, reason)
	return New(MalformedInterfaceCode, message).
		WithLocation(loc).
		WithContext("interface", interfaceName)
}

// NewReceiverlessMethodError creates an error for a method that declares no
// receiver; associated methods cannot be dispatched over a union value
func NewReceiverlessMethodError(interfaceName, methodName string, loc SourceLocation) *BaseError {
	message := fmt.Sprintf("method '%s' on interface '%s' must take a receiver to be dispatched", methodName, interfaceName)
	return New(MalformedInterfaceCode, message).
		WithLocation(loc).
		WithContext("interface", interfaceName).
		WithContext("method", methodName).
		WithSuggestions(
			"Declare the method with self, &self, or &mut self",
			"Move associated methods off the dispatched interface",
		)
}

// NewMalformedVariantError creates an error for a variant that does not wrap
// exactly one type
func NewMalformedVariantError(unionName, variantName string, wrappedCount int, loc SourceLocation) *BaseError {
	message := fmt.Sprintf("variant '%s' of union '%s' wraps %d types, expected exactly one", variantName, unionName, wrappedCount)
	return New(MalformedVariantCode, message).
		WithLocation(loc).
		WithContext("union", unionName).
		WithContext("variant", variantName).
		WithContext("wrapped_count", wrappedCount).
		WithSuggestions(
			"Declare each variant as Name(WrappedType)",
			"Split multi-field variants into wrapper types",
		)
}

// NewEmptyUnionError creates an error for a union without variants
func NewEmptyUnionError(unionName string, loc SourceLocation) *BaseError {
	message := fmt.Sprintf("union '%s' declares no variants", unionName)
	return New(MalformedVariantCode, message).
		WithLocation(loc).
		WithContext("union", unionName).
		WithSuggestion("Declare at least one variant wrapping an implementing type")
}

// NewUnknownSupertraitError creates an error for a supertrait reference that
// does not resolve to a declared interface
func NewUnknownSupertraitError(interfaceName, supertrait string, known []string, loc SourceLocation) *BaseError {
	message := fmt.Sprintf("supertrait '%s' of interface '%s' is not a declared interface", supertrait, interfaceName)
	err := New(MalformedInterfaceCode, message).
		WithLocation(loc).
		WithContext("interface", interfaceName).
		WithContext("supertrait", supertrait).
		WithSuggestion(fmt.Sprintf("Declare 'interface %s' in a scanned file", supertrait))

	if len(known) > 0 {
		err.WithSuggestion(fmt.Sprintf("Known interfaces: %s", strings.Join(known, ", ")))
	}

	return err
}

// NewInheritanceDepthError creates an error for a supertrait that itself
// extends other interfaces; only one level of inheritance is supported
func NewInheritanceDepthError(interfaceName, supertrait string, grandparents []string, loc SourceLocation) *BaseError {
	message := fmt.Sprintf("interface '%s' extends '%s', which itself extends %s; only one level of inheritance is supported",
		interfaceName, supertrait, strings.Join(grandparents, ", "))
	return New(InheritanceDepthCode, message).
		WithLocation(loc).
		WithContext("interface", interfaceName).
		WithContext("supertrait", supertrait).
		WithContext("grandparents", grandparents).
		WithSuggestions(
			fmt.Sprintf("Declare the inherited methods directly on '%s'", supertrait),
			"Flatten the inheritance chain to a single level",
		)
}

// NewUnresolvedReceiverError creates the error for a normalized method whose
// receiver kind was never resolved
func NewUnresolvedReceiverError(interfaceName, methodName string) *BaseError {
	message := fmt.Sprintf("method '%s' on interface '%s' reached dispatch synthesis without a resolved receiver", methodName, interfaceName)
	return New(UnresolvedReceiverCode, message).
		WithContext("interface", interfaceName).
		WithContext("method", methodName)
}

// NewDuplicateInterfaceError creates an error for two interface declarations
// sharing one name, pointing at both sites
func NewDuplicateInterfaceError(name string, loc, existing SourceLocation) *BaseError {
	message := fmt.Sprintf("interface '%s' is declared more than once", name)
	return New(DuplicateInterfaceCode, message).
		WithLocation(loc).
		WithContext("interface", name).
		WithContext("existing_location", existing.String()).
		WithSuggestions(
			"Rename one of the interfaces",
			fmt.Sprintf("Previous declaration at %s", existing.String()),
		)
}
