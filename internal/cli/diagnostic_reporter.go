package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/toyz/sumgen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(os.Stderr, "! ")
	fmt.Fprintf(os.Stderr, "%s\n", message)

	for _, suggestion := range suggestions {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", suggestion)
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(os.Stderr, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(os.Stderr, "=============================\n\n")

	// A collected list reports every failure, in collection order
	if list, ok := err.(*errors.ErrorList); ok {
		r.reportErrorList(list)
	} else {
		r.reportSingle(err)
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// reportErrorList reports every collected failure, numbered
func (r *DiagnosticReporter) reportErrorList(list *errors.ErrorList) {
	failures := list.Unwrap()
	fmt.Fprintf(os.Stderr, "%d problems were found:\n\n", len(failures))

	for i, err := range failures {
		fmt.Fprintf(os.Stderr, "--- Problem %d of %d ---\n\n", i+1, len(failures))
		r.reportSingle(err)
	}
}

// reportSingle reports one failure, with full context when available
func (r *DiagnosticReporter) reportSingle(err error) {
	if genErr, ok := errors.As(err); ok {
		r.reportGenerationError(genErr)
	} else {
		r.reportBasicError(err)
	}
}

// reportGenerationError reports a structured error with context and suggestions
func (r *DiagnosticReporter) reportGenerationError(genErr errors.SumgenError) {
	// Error type header
	r.printErrorHeader(genErr.ErrorCode())

	// Main error message, positioned when the failure has a source location
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", genErr.Error())

	// In verbose mode, show the underlying cause if available
	if r.verbose && genErr.Unwrap() != nil {
		fmt.Fprintf(os.Stderr, "Underlying cause: %s\n\n", genErr.Unwrap().Error())
	}

	// Context information
	if len(genErr.Context()) > 0 {
		r.printContext(genErr.Context())
	}

	// Suggestions
	if len(genErr.Suggestions()) > 0 {
		r.printSuggestions(genErr.Suggestions())
	}

	// Additional help based on error type
	r.printAdditionalHelp(genErr.ErrorCode())

	// In verbose mode, show additional debugging information
	if r.verbose {
		r.printVerboseDebuggingInfo(genErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", err.Error())

	// Try to provide some general guidance based on error message
	errorMsg := strings.ToLower(err.Error())

	if strings.Contains(errorMsg, "parse") || strings.Contains(errorMsg, "syntax") {
		fmt.Fprintf(os.Stderr, "This appears to be a declaration syntax issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check the interface and enum declarations in the named file\n")
		fmt.Fprintf(os.Stderr, "  - Ensure every variant wraps exactly one type\n")
		fmt.Fprintf(os.Stderr, "  - Verify braces and semicolons are balanced\n\n")
	} else if strings.Contains(errorMsg, "config") {
		fmt.Fprintf(os.Stderr, "This appears to be a configuration issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check your sumgen.yaml file\n")
		fmt.Fprintf(os.Stderr, "  - Ensure extensions start with a dot\n")
		fmt.Fprintf(os.Stderr, "  - Try specifying --config explicitly\n\n")
	} else if strings.Contains(errorMsg, "file") || strings.Contains(errorMsg, "directory") {
		fmt.Fprintf(os.Stderr, "This appears to be a file system issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check that the named path exists and is readable\n")
		fmt.Fprintf(os.Stderr, "  - Verify you have write permission for output directories\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error type
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.SyntaxErrorCode:
		errorTypeStr = "Declaration Syntax Error"
	case errors.MalformedInterfaceCode:
		errorTypeStr = "Malformed Interface Error"
	case errors.MalformedVariantCode:
		errorTypeStr = "Malformed Variant Error"
	case errors.InheritanceDepthCode:
		errorTypeStr = "Inheritance Depth Error"
	case errors.UnresolvedReceiverCode:
		errorTypeStr = "Unresolved Receiver Error"
	case errors.DuplicateInterfaceCode:
		errorTypeStr = "Duplicate Interface Error"
	case errors.ConfigErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.TemplateErrorCode:
		errorTypeStr = "Template Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(os.Stderr, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(os.Stderr, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "Context:\n")

	// Print important context items first
	importantKeys := []string{"interface", "union", "method", "variant", "supertrait"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	// Print remaining context items
	for key, value := range context {
		if !printed[key] {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	// Convert snake_case to Title Case
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(os.Stderr, "Suggestions:\n")

	for i, suggestion := range suggestions {
		// Format multi-line suggestions nicely
		lines := strings.Split(suggestion, "\n")
		if len(lines) == 1 {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, lines[0])
			for _, line := range lines[1:] {
				if strings.TrimSpace(line) != "" {
					fmt.Fprintf(os.Stderr, "      %s\n", line)
				}
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// printAdditionalHelp prints additional help based on error type
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.SyntaxErrorCode:
		fmt.Fprintf(os.Stderr, "Declaration Syntax:\n")
		fmt.Fprintf(os.Stderr, "  - interface Name { fn method(&self) -> Type; }\n")
		fmt.Fprintf(os.Stderr, "  - pub enum Name { Variant(WrappedType), }\n")
		fmt.Fprintf(os.Stderr, "  - doc comments (///) and attributes (#[...]) go above the item\n\n")

	case errors.MalformedVariantCode:
		fmt.Fprintf(os.Stderr, "Variant Requirements:\n")
		fmt.Fprintf(os.Stderr, "  - Every variant must wrap exactly one type: Variant(Type)\n")
		fmt.Fprintf(os.Stderr, "  - Unit, struct-like and multi-field variants cannot be dispatched\n")
		fmt.Fprintf(os.Stderr, "  - Wrap extra fields in a named struct and dispatch on that\n\n")

	case errors.InheritanceDepthCode:
		fmt.Fprintf(os.Stderr, "Supertrait Rules:\n")
		fmt.Fprintf(os.Stderr, "  - A dispatched interface may list supertraits after ':'\n")
		fmt.Fprintf(os.Stderr, "  - Those supertraits must not extend further interfaces\n")
		fmt.Fprintf(os.Stderr, "  - Flatten deeper hierarchies into the first level\n\n")

	case errors.ConfigErrorCode:
		fmt.Fprintf(os.Stderr, "Configuration Help:\n")
		fmt.Fprintf(os.Stderr, "  - sumgen.yaml fields: min_version, extensions, output_suffix, header, exclude\n")
		fmt.Fprintf(os.Stderr, "  - Extension entries include the leading dot, e.g. \".sum\"\n")
		fmt.Fprintf(os.Stderr, "  - min_version is a semver tag like v0.2.0\n\n")
	}

	// Always show general help
	fmt.Fprintf(os.Stderr, "For more help:\n")
	fmt.Fprintf(os.Stderr, "  - Check the sumgen documentation\n")
	fmt.Fprintf(os.Stderr, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(os.Stderr, "  - Review the declarations in the examples/ directory\n")
}

// printVerboseDebuggingInfo prints additional debugging information in verbose mode
func (r *DiagnosticReporter) printVerboseDebuggingInfo(genErr errors.SumgenError) {
	fmt.Fprintf(os.Stderr, "Verbose Debug Information:\n")
	fmt.Fprintf(os.Stderr, "  Error Code: %s\n", genErr.ErrorCode())

	if len(genErr.Context()) > 0 {
		fmt.Fprintf(os.Stderr, "  Full Context Data:\n")
		for key, value := range genErr.Context() {
			fmt.Fprintf(os.Stderr, "    %s: %+v\n", key, value)
		}
	}

	if genErr.Unwrap() != nil {
		fmt.Fprintf(os.Stderr, "  Error Chain:\n")
		err := genErr.Unwrap()
		level := 1
		for err != nil {
			fmt.Fprintf(os.Stderr, "    %d. %s\n", level, err.Error())
			if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
				err = unwrapper.Unwrap()
				level++
			} else {
				break
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// DebugSection prints a debug section header when verbose mode is enabled
func (r *DiagnosticReporter) DebugSection(section string) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] === %s ===\n", section)
	}
}

// ReportSuccess reports successful generation with summary information
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	fmt.Printf("\nCode Generation Completed Successfully!\n")
	fmt.Printf("=======================================\n\n")

	if summary.DirectoriesScanned > 0 {
		fmt.Printf("Scanned %d directories\n", summary.DirectoriesScanned)
	}

	if summary.FilesParsed > 0 {
		fmt.Printf("Parsed %d declaration files\n", summary.FilesParsed)
	}

	if summary.InterfacesFound > 0 {
		fmt.Printf("Registered %d interfaces\n", summary.InterfacesFound)
	}

	if summary.UnionsExpanded > 0 {
		fmt.Printf("Expanded %d unions\n", summary.UnionsExpanded)
	}

	if summary.WarningsReported > 0 {
		fmt.Printf("Reported %d warnings\n", summary.WarningsReported)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Printf("\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Printf("  - %s\n", file)
		}
	}

	fmt.Printf("\nYour sum types are ready to use!\n")
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	DirectoriesScanned int
	FilesParsed        int
	InterfacesFound    int
	UnionsExpanded     int
	WarningsReported   int
	GeneratedFiles     []string
}
