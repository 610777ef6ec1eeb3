package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/toyz/sumgen/internal/cli"
	"github.com/toyz/sumgen/internal/utils"
	"github.com/toyz/sumgen/pkg/sumgen"
)

func main() {
	// Define command-line flags
	var (
		configFlag   = flag.String("config", "", "Path to a sumgen.yaml configuration file (defaults to auto-discovery)")
		verboseFlag  = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag    = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag    = flag.Bool("clean", false, "Delete generated declaration files from the specified directories")
		watchFlag    = flag.Bool("watch", false, "Watch declaration files and regenerate on change")
		noHeaderFlag = flag.Bool("no-header", false, "Omit the generated-code header from output files")
		versionFlag  = flag.Bool("version", false, "Print the sumgen version and exit")
		helpFlag     = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Sumgen Dispatch Generator\n")
		fmt.Fprintf(os.Stderr, "Recursively scans directories for sum type declaration files and expands dispatch invocations into forwarding implementations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for declaration files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(os.Stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(os.Stderr, "  ./protocol/...     Scan protocol directory and all its subdirectories\n")
		fmt.Fprintf(os.Stderr, "  ./decls/messages   Scan only the specific directory (no recursion)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Expand everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./protocol/...                         # Expand protocol declarations recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./decls/shapes ./decls/messages        # Expand specific directories\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --config build/sumgen.yaml ./...       # Load settings from a specific file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose ./protocol/...               # Enable detailed output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --quiet ./...                          # Minimal output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                          # Delete all generated declaration files\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --watch ./...                          # Regenerate whenever declarations change\n", os.Args[0])
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("sumgen %s\n", sumgen.Version)
		os.Exit(0)
	}

	// Show help if requested
	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	// Validate arguments
	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	reporter := cli.NewDiagnosticReporter(*verboseFlag)

	// Resolve configuration: an explicit --config path wins, then a
	// sumgen.yaml found in the first root, then the built-in defaults
	config := cli.DefaultConfig()
	configPath := *configFlag
	if configPath == "" {
		if found, ok := cli.FindConfig(args); ok {
			configPath = found
		}
	}
	if configPath != "" {
		loaded, err := cli.LoadConfig(configPath)
		if err != nil {
			reporter.ReportError(err)
			os.Exit(1)
		}
		config = loaded
	}

	config.Roots = args
	config.Verbose = *verboseFlag
	config.Quiet = *quietFlag
	config.Watch = *watchFlag
	if *noHeaderFlag {
		config.Header = false
	}

	if err := config.Validate(); err != nil {
		reporter.ReportError(err)
		os.Exit(1)
	}

	// Create diagnostic system based on flags
	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	// Show startup banner
	diagnostics.Section("Sumgen Code Generator")

	// Handle clean operation
	if *cleanFlag {
		diagnostics.Info("Starting cleanup operation...")
		diagnostics.StartProgress("Cleaning generated files")

		cleaner := cli.NewCleaner()
		removed, err := cleaner.CleanGeneratedFiles(&config)
		if err != nil {
			diagnostics.EndProgress(false, "")
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}

		diagnostics.EndProgress(true, fmt.Sprintf("%d files removed", len(removed)))
		for _, file := range removed {
			diagnostics.List("%s", file)
		}
		diagnostics.Success("All generated declaration files have been removed")
		return
	}

	// Show configuration
	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if configPath != "" {
			diagnostics.List("Configuration file: %s", configPath)
		}
		diagnostics.List("Extensions: %s", strings.Join(config.Extensions, ", "))
		diagnostics.List("Output suffix: %s", config.OutputSuffix)
	}

	generator := cli.NewGeneratorWithDiagnostics(*verboseFlag, diagnostics)

	// Watch mode regenerates until interrupted
	if config.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher := cli.NewWatcher(generator, config)
		if err := watcher.Run(ctx); err != nil {
			reporter.ReportError(err)
			os.Exit(1)
		}
		return
	}

	// Run the generation process
	if err := generator.Run(config); err != nil {
		reporter.ReportError(err)
		os.Exit(1)
	}

	generator.ReportSuccess()
}
