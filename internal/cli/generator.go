package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/toyz/sumgen/internal/emitter"
	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/normalizer"
	"github.com/toyz/sumgen/internal/parser"
	"github.com/toyz/sumgen/internal/registry"
	"github.com/toyz/sumgen/internal/schema"
	"github.com/toyz/sumgen/internal/synth"
	"github.com/toyz/sumgen/internal/utils"
	"github.com/toyz/sumgen/internal/utils/fileops"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner     *DirectoryScanner
	parser      *parser.Parser
	registry    *registry.InterfaceRegistry
	normalizer  *normalizer.Normalizer
	synthesizer *synth.Synthesizer
	fileOps     *fileops.FileOps
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(verbose bool) *Generator {
	reg := registry.NewInterfaceRegistry()
	return &Generator{
		scanner:     NewDirectoryScanner(),
		parser:      parser.New(),
		registry:    reg,
		normalizer:  normalizer.New(reg),
		synthesizer: synth.New(),
		fileOps:     fileops.NewFileOps(),
		reporter:    NewDiagnosticReporter(verbose),
		summary:     GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// NewGeneratorWithDiagnostics creates a new CLI generator with the structured
// diagnostic system
func NewGeneratorWithDiagnostics(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	reg := registry.NewInterfaceRegistry()
	return &Generator{
		scanner:     NewDirectoryScanner(),
		parser:      parser.New(),
		registry:    reg,
		normalizer:  normalizer.New(reg),
		synthesizer: synth.New(),
		fileOps:     fileops.NewFileOps(),
		reporter:    NewDiagnosticReporter(verbose),
		diagnostics: diagnostics,
		summary:     GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// Generate executes the generation process for the given roots with default
// settings
func (g *Generator) Generate(roots []string) error {
	config := DefaultConfig()
	config.Roots = roots
	config.Verbose = g.reporter != nil && g.reporter.verbose

	return g.Run(config)
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process
func (g *Generator) Run(config Config) error {
	startTime := time.Now()

	// Reset state left over from any previous run
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}
	g.registry.Clear()

	// Use new diagnostic system if available, otherwise fall back to old output
	if g.diagnostics != nil {
		g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
		g.diagnostics.Debug("Scanning roots: %v", config.Roots)
	} else if config.Verbose {
		fmt.Printf("Starting code generation at %s\n", startTime.Format("15:04:05"))
		fmt.Printf("Verbose mode enabled\n")
		fmt.Printf("Scanning roots: %v\n", config.Roots)
		fmt.Printf("\n")
	}

	// Locate the directories that hold declaration files
	if g.diagnostics != nil {
		g.diagnostics.StartProgress("Scanning directories for declaration files")
	} else if config.Verbose {
		fmt.Printf("Scanning directories for declaration files...\n")
	}
	declDirs, err := g.scanner.ScanDirectories(&config)
	if err != nil {
		if g.diagnostics != nil {
			g.diagnostics.EndProgress(false, "")
			g.diagnostics.Error("Failed to scan directories: %v", err)
		}
		return errors.Wrap(errors.FileSystemErrorCode, "failed to scan directories", err).
			WithSuggestions(
				"Check that the specified directories exist",
				"Ensure you have read permissions for the directories",
				"Verify the directory paths are correct",
			).
			WithContext("roots", config.Roots)
	}

	if len(declDirs) == 0 {
		if g.diagnostics != nil {
			g.diagnostics.EndProgress(false, "")
			g.diagnostics.Warn("No declaration files found in specified directories")
		}
		return errors.New(errors.FileSystemErrorCode, "no declaration files found in specified directories").
			WithSuggestions(
				fmt.Sprintf("Ensure the directories contain %s files", strings.Join(config.Extensions, " or ")),
				"Try the './...' pattern to scan recursively",
				"Check the extensions list in sumgen.yaml",
			).
			WithContext("roots", config.Roots)
	}

	if g.diagnostics != nil {
		g.diagnostics.EndProgress(true, "")
		g.diagnostics.Info("Found %d directories to process", len(declDirs))
		g.diagnostics.Indent()
		for _, dir := range declDirs {
			g.diagnostics.List("%s", dir)
		}
		g.diagnostics.Unindent()
	} else {
		fmt.Printf("Found %d directories to process\n", len(declDirs))
		if config.Verbose {
			fmt.Printf("Declaration directories:\n")
			for i, dir := range declDirs {
				fmt.Printf("  %d. %s\n", i+1, dir)
			}
			fmt.Printf("\n")
		}
	}

	g.summary.DirectoriesScanned = len(declDirs)

	// First pass: parse every file and register every interface, so
	// supertraits resolve across files and directories
	if g.diagnostics != nil {
		g.diagnostics.Subsection("Interface Registration Phase")
		g.diagnostics.StartProgress("Parsing declaration files")
	} else {
		fmt.Printf("Parsing declaration files across all directories...\n")
		if config.Verbose {
			fmt.Printf("Phase 1: interface registration\n")
		}
	}

	var parsed []*schema.SourceFile
	var parseErrors errors.ErrorList
	for i, dir := range declDirs {
		if g.diagnostics == nil && config.Verbose {
			fmt.Printf("  Parsing directory %d/%d: %s\n", i+1, len(declDirs), dir)
		}

		declFiles, err := g.scanner.ListDeclFiles(dir, &config)
		if err != nil {
			parseErrors.Add(err)
			continue
		}

		for _, file := range declFiles {
			sourceFile, err := g.parseDeclFile(file)
			if err != nil {
				parseErrors.Add(err)
				continue
			}

			if err := g.registry.RegisterFile(sourceFile); err != nil {
				parseErrors.Add(err)
				continue
			}

			parsed = append(parsed, sourceFile)
			g.summary.FilesParsed++
		}
	}

	registered := g.registry.Size()
	if g.diagnostics != nil {
		g.diagnostics.EndProgress(parseErrors.IsEmpty(), fmt.Sprintf("%d interfaces registered", registered))
	} else {
		fmt.Printf("Registered %d interfaces across all directories\n", registered)
	}
	g.summary.InterfacesFound = registered

	// Synthesis needs the complete registry; a half-registered run would
	// cascade into misleading supertrait resolution errors
	if !parseErrors.IsEmpty() {
		return parseErrors.Err()
	}

	// Second pass: expand invocations now that every interface is known
	if g.diagnostics != nil {
		g.diagnostics.Subsection("Dispatch Synthesis Phase")
	} else if config.Verbose {
		fmt.Printf("Phase 2: dispatch synthesis\n")
	}

	em := emitter.New()
	if !config.Header {
		em = emitter.NewWithoutHeader()
	}

	var expandErrors errors.ErrorList
	for _, sourceFile := range parsed {
		if len(sourceFile.Invocations) == 0 {
			if g.diagnostics != nil {
				g.diagnostics.Verbose("Skipping %s (no dispatch invocations)", sourceFile.Path)
			} else if config.Verbose {
				fmt.Printf("  Skipping %s (no dispatch invocations)\n", sourceFile.Path)
			}
			continue
		}

		if g.diagnostics != nil {
			g.diagnostics.SourcePath(sourceFile.Path)
		} else {
			fmt.Printf("Processing file: %s\n", sourceFile.Path)
		}

		expansions, err := g.expandFile(sourceFile)
		if err != nil {
			expandErrors.Add(err)
			continue
		}

		generated, err := em.RenderFile(sourceFile.Path, expansions)
		if err != nil {
			expandErrors.Add(err)
			continue
		}

		outputPath := config.OutputPath(sourceFile.Path)
		wrote, err := g.writeGeneratedFile(outputPath, generated.Content)
		if err != nil {
			expandErrors.Add(err)
			continue
		}

		if wrote {
			if g.diagnostics != nil {
				g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s", outputPath))
			} else {
				fmt.Printf("  Generated file: %s\n", outputPath)
			}
			g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, outputPath)
		} else {
			if g.diagnostics != nil {
				g.diagnostics.Verbose("Output unchanged: %s", outputPath)
			} else if config.Verbose {
				fmt.Printf("  Output unchanged: %s\n", outputPath)
			}
		}
	}

	if !expandErrors.IsEmpty() {
		return expandErrors.Err()
	}

	if g.diagnostics != nil {
		g.diagnostics.Verbose("Generation completed in %v", time.Since(startTime))
	} else if config.Verbose {
		duration := time.Since(startTime)
		fmt.Printf("\nGeneration completed in %v\n", duration)
		fmt.Printf("Total files parsed: %d\n", g.summary.FilesParsed)
		fmt.Printf("Total files generated: %d\n", len(g.summary.GeneratedFiles))
	}

	return nil
}

// parseDeclFile parses one declaration file, reusing a cached parse while the
// file on disk is unchanged
func (g *Generator) parseDeclFile(path string) (*schema.SourceFile, error) {
	if cached, ok := g.fileOps.CacheManager().GetDecl(path); ok {
		return cached, nil
	}

	sourceFile, err := g.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	g.fileOps.CacheManager().SetDecl(path, sourceFile)
	return sourceFile, nil
}

// expandFile normalizes and synthesizes every invocation in one file
func (g *Generator) expandFile(sourceFile *schema.SourceFile) ([]schema.Expansion, error) {
	expansions := make([]schema.Expansion, 0, len(sourceFile.Invocations))

	for _, inv := range sourceFile.Invocations {
		methods, err := g.normalizer.Normalize(inv)
		if err != nil {
			return nil, err
		}

		forwarding, err := g.synthesizer.Dispatch(inv.Union, methods)
		if err != nil {
			return nil, err
		}

		conversions, warnings := g.synthesizer.Conversions(inv.Union)
		for _, warning := range warnings {
			g.reporter.ReportWarning(
				fmt.Sprintf("%s: %s", warning.Location, warning.Message),
				"rename one of the variants or wrap distinct types",
			)
			g.summary.WarningsReported++
		}

		expansions = append(expansions, schema.Expansion{
			Invocation:  inv,
			Forwarding:  forwarding,
			Conversions: conversions,
		})
		g.summary.UnionsExpanded++
	}

	return expansions, nil
}

// writeGeneratedFile writes content atomically, skipping the write when the
// file already holds exactly this content
func (g *Generator) writeGeneratedFile(path, content string) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		return false, nil
	}

	if err := g.fileOps.WriteFileAtomic(path, []byte(content), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// ReportSuccess reports successful generation using the diagnostic reporter
func (g *Generator) ReportSuccess() {
	g.reporter.ReportSuccess(g.summary)
}
