// Package config holds all widgelabel configuration: which files to
// annotate, which columns to read, and how the labelling session behaves.
// Configuration comes from a YAML file (widgelabel.yaml by default),
// overridden by environment variables and then by command-line flags.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"widgelabel/internal/hansard"
)

// DefaultSentimentOptions is the 4-value scale offered when the config
// does not name its own option set.
var DefaultSentimentOptions = []string{
	"positive",
	"slightly positive",
	"slightly negative",
	"negative",
}

// Defaults that mirror the tool's documented behavior.
const (
	DefaultIDColumn       = "id"
	DefaultTagsFile       = "default_tags.csv"
	DefaultHighlightColor = "blue"
	DefaultConfigFile     = "widgelabel.yaml"
)

// Config describes one labelling session.
type Config struct {
	// Source data
	TextFile     string   `yaml:"text_file"`
	TextColumn   string   `yaml:"text_column"`
	IDColumn     string   `yaml:"id_column"`
	ExtraColumns []string `yaml:"extra_columns,omitempty"`

	// Annotation output
	LabelFile string `yaml:"label_file"`
	TagsFile  string `yaml:"tags_file"`
	AutoSave  bool   `yaml:"auto_save"`

	// Session behavior. StartIndex nil means "resume at the most
	// recently labelled record, or 0 when nothing is labelled yet".
	StartIndex       *int     `yaml:"start_index,omitempty"`
	SentimentOptions []string `yaml:"sentiment_options,omitempty"`

	// Display
	HighlightRegex string `yaml:"highlight_regex,omitempty"`
	HighlightColor string `yaml:"highlight_color,omitempty"`
	Theme          string `yaml:"theme,omitempty"` // light or dark

	// HansardTags enables the government-affiliation badge derived from
	// the post_name column of the Hansard dataset.
	HansardTags bool `yaml:"hansard_tags"`

	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// LoggingConfig configures the category file logger. When DebugMode is
// false nothing is written.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level,omitempty"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// Default returns a Config with every documented default applied.
func Default() *Config {
	return &Config{
		IDColumn:         DefaultIDColumn,
		TagsFile:         DefaultTagsFile,
		HighlightColor:   DefaultHighlightColor,
		SentimentOptions: append([]string(nil), DefaultSentimentOptions...),
		Logging:          LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file. A missing file yields defaults so the
// whole session can be described by flags alone; a malformed file is an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// applyDefaults fills zero values the YAML file left out.
func (c *Config) applyDefaults() {
	if c.IDColumn == "" {
		c.IDColumn = DefaultIDColumn
	}
	if c.TagsFile == "" {
		c.TagsFile = DefaultTagsFile
	}
	if c.HighlightColor == "" {
		c.HighlightColor = DefaultHighlightColor
	}
	if len(c.SentimentOptions) == 0 {
		c.SentimentOptions = append([]string(nil), DefaultSentimentOptions...)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// applyEnvOverrides lets the environment override the output paths and
// the autosave flag, which is convenient when one session config is
// shared between analysts.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("WIDGELABEL_LABEL_FILE"); v != "" {
		c.LabelFile = v
	}
	if v := os.Getenv("WIDGELABEL_TAGS_FILE"); v != "" {
		c.TagsFile = v
	}
	if v := os.Getenv("WIDGELABEL_AUTOSAVE"); v != "" {
		c.AutoSave = v == "1" || strings.EqualFold(v, "true")
	}
}

// Validate checks that the session is runnable. Hansard mode needs the
// post_name column, so it is appended to the display columns when missing.
func (c *Config) Validate() error {
	if c.TextFile == "" {
		return fmt.Errorf("config: text_file is required")
	}
	if c.TextColumn == "" {
		return fmt.Errorf("config: text_column is required")
	}
	if c.LabelFile == "" {
		return fmt.Errorf("config: label_file is required")
	}
	if c.HighlightRegex != "" {
		if _, err := regexp.Compile(c.HighlightRegex); err != nil {
			return fmt.Errorf("config: highlight_regex: %w", err)
		}
	}
	if c.HansardTags && !containsColumn(c.ExtraColumns, hansard.PostNameColumn) {
		c.ExtraColumns = append(c.ExtraColumns, hansard.PostNameColumn)
	}
	return nil
}

// CompileHighlight returns the compiled highlight pattern, or nil when no
// pattern is configured. Validate must have accepted the config first.
func (c *Config) CompileHighlight() *regexp.Regexp {
	if c.HighlightRegex == "" {
		return nil
	}
	return regexp.MustCompile(c.HighlightRegex)
}

func containsColumn(cols []string, name string) bool {
	for _, col := range cols {
		if col == name {
			return true
		}
	}
	return false
}
