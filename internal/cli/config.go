package cli

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/toyz/sumgen/internal/emitter"
	"github.com/toyz/sumgen/internal/errors"
	"github.com/toyz/sumgen/internal/utils"
	"github.com/toyz/sumgen/pkg/sumgen"
)

// DefaultConfigName is the file name looked up in the first scanned root
// when no explicit --config path is given.
const DefaultConfigName = "sumgen.yaml"

// Config holds the resolved settings for a generator run.
type Config struct {
	// Roots is the list of scan roots. A root ending in "/..." is walked
	// recursively; a plain directory is scanned without descending.
	Roots []string

	// Extensions lists the declaration file extensions to pick up,
	// including the leading dot.
	Extensions []string

	// OutputSuffix is appended to the source base name when deriving the
	// generated file name, e.g. "shapes.sum" -> "shapes_gen.sum".
	OutputSuffix string

	// Header controls whether generated files start with the
	// "Code generated by sumgen" banner.
	Header bool

	// Exclude lists directory names skipped during recursive scans.
	Exclude []string

	// MinVersion, when set, is the minimum sumgen release the declaration
	// files require. Generation refuses to run on older binaries.
	MinVersion string

	// Verbose enables detailed diagnostic output
	Verbose bool

	// Quiet suppresses all non-error output
	Quiet bool

	// Watch keeps the generator running and regenerates on file changes
	Watch bool
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Extensions:   []string{emitter.DeclExt},
		OutputSuffix: "_gen",
		Header:       true,
	}
}

// fileConfig mirrors the sumgen.yaml document shape. Pointer fields
// distinguish "absent" from zero values during the merge.
type fileConfig struct {
	MinVersion   string   `yaml:"min_version"`
	Extensions   []string `yaml:"extensions"`
	OutputSuffix string   `yaml:"output_suffix"`
	Header       *bool    `yaml:"header"`
	Exclude      []string `yaml:"exclude"`
}

// LoadConfig reads a sumgen.yaml file and merges it over the defaults.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.WrapConfigError(path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return config, errors.WrapConfigError(path, err)
	}

	if fc.MinVersion != "" {
		config.MinVersion = fc.MinVersion
	}
	if len(fc.Extensions) > 0 {
		config.Extensions = fc.Extensions
	}
	if fc.OutputSuffix != "" {
		config.OutputSuffix = fc.OutputSuffix
	}
	if fc.Header != nil {
		config.Header = *fc.Header
	}
	if len(fc.Exclude) > 0 {
		config.Exclude = fc.Exclude
	}

	return config, nil
}

// FindConfig looks for sumgen.yaml in the first scan root. It returns the
// config path and true when the file exists.
func FindConfig(roots []string) (string, bool) {
	dir := "."
	if len(roots) > 0 {
		dir = strings.TrimSuffix(roots[0], "/...")
		if dir == "" {
			dir = "."
		}
	}

	path := filepath.Join(dir, DefaultConfigName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

// Validate checks the resolved configuration before any scanning starts.
func (c *Config) Validate() error {
	extValidator := utils.ValidateDeclExtension("extension")
	for _, ext := range c.Extensions {
		if err := extValidator(ext); err != nil {
			return configFieldError("extensions", err)
		}
	}

	if err := utils.ValidateOutputSuffix("output_suffix")(c.OutputSuffix); err != nil {
		return configFieldError("output_suffix", err)
	}

	dirValidator := utils.ValidateDirName("exclude entry")
	for _, dir := range c.Exclude {
		if err := dirValidator(dir); err != nil {
			return configFieldError("exclude", err)
		}
	}

	if c.MinVersion != "" {
		if err := utils.IsSemver("min_version")(c.MinVersion); err != nil {
			return configFieldError("min_version", err)
		}
		if semver.Compare(sumgen.Version, c.MinVersion) < 0 {
			return errors.NewConfigError("min_version",
				"declarations require sumgen "+c.MinVersion+" or newer, this binary is "+sumgen.Version).
				WithSuggestion("upgrade sumgen, or lower min_version in sumgen.yaml")
		}
	}

	return nil
}

// OutputPath derives the generated file path for a declaration source path.
func (c *Config) OutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(sourcePath, ext)
	return base + c.OutputSuffix + ext
}

// configFieldError converts a validator failure into a configuration error,
// keeping the validator message but attributing it to the yaml field.
func configFieldError(field string, err error) error {
	if verr, ok := err.(*utils.ValidationError); ok {
		return errors.NewConfigError(field, verr.Message)
	}
	return errors.NewConfigError(field, err.Error())
}
