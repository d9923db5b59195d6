package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"widgelabel/cmd/widgelabel/ui"
	"widgelabel/internal/annotate"
	"widgelabel/internal/config"
	"widgelabel/internal/logging"
	"widgelabel/internal/nav"
	"widgelabel/internal/persist"
	"widgelabel/internal/record"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Session flags, overriding the config file when set.
	flagTextFile       string
	flagTextColumn     string
	flagIDColumn       string
	flagExtraColumns   []string
	flagLabelFile      string
	flagTagsFile       string
	flagAutoSave       bool
	flagStartIndex     int
	flagHighlightRegex string
	flagHighlightColor string
	flagTheme          string
	flagHansard        bool

	// Logger for the non-interactive subcommands.
	logger *zap.Logger
)

// rootCmd launches the interactive labelling session.
var rootCmd = &cobra.Command{
	Use:   "widgelabel",
	Short: "widgelabel - keyboard-driven text annotation over CSV files",
	Long: `widgelabel is a terminal tool for labelling text records with sentiment
and tags. Records come from a CSV file; annotations are written back to
two flat CSV files that are safe to version and diff.

Run without arguments to start the interactive labelling interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive session has its own debug page and category
		// logger; zap is only for the plain subcommands.
		if cmd.Use == "widgelabel" && cmd.CalledAs() == "widgelabel" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLabelling(cmd)
	},
}

// statsCmd prints annotation progress without opening the interface.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show annotation progress for a session",
	Long: `Loads the session's data and annotation files and prints how many
records are labelled, the per-sentiment breakdown, and the tag counts.`,
	RunE: runStats,
}

// initCmd writes a starter config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter widgelabel.yaml",
	Long: `Writes a config file populated from the session flags, so a session
can be re-opened with plain "widgelabel" afterwards.

Example:
  widgelabel init --text-file speeches.csv --text-column text --label-file labels.csv`,
	RunE: runInit,
}

// assignIDsCmd adds a generated id column to a CSV file.
var assignIDsCmd = &cobra.Command{
	Use:   "assign-ids [input.csv] [output.csv]",
	Short: "Prepend a generated id column to a CSV file",
	Long: `Copies a CSV file, prepending a column of generated unique ids. Use it
once on source data that has no stable id column before labelling it.`,
	Args: cobra.ExactArgs(2),
	RunE: runAssignIDs,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.PersistentFlags().StringVar(&flagTextFile, "text-file", "", "CSV file with the records to label")
	rootCmd.PersistentFlags().StringVar(&flagTextColumn, "text-column", "", "Column holding the text to display")
	rootCmd.PersistentFlags().StringVar(&flagIDColumn, "id-column", "", "Column holding the record id")
	rootCmd.PersistentFlags().StringSliceVar(&flagExtraColumns, "extra-columns", nil, "Extra columns to show as badges")
	rootCmd.PersistentFlags().StringVar(&flagLabelFile, "label-file", "", "CSV file the sentiments are written to")
	rootCmd.PersistentFlags().StringVar(&flagTagsFile, "tags-file", "", "CSV file the tags are written to")
	rootCmd.PersistentFlags().BoolVar(&flagAutoSave, "autosave", false, "Save after every annotation")
	rootCmd.PersistentFlags().IntVar(&flagStartIndex, "start-index", -1, "Record position to open at (default: resume)")
	rootCmd.PersistentFlags().StringVar(&flagHighlightRegex, "highlight-regex", "", "Pattern to highlight in the text")
	rootCmd.PersistentFlags().StringVar(&flagHighlightColor, "highlight-color", "", "Highlight color name")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme: light or dark")
	rootCmd.PersistentFlags().BoolVar(&flagHansard, "hansard", false, "Show the government-affiliation badge (Hansard data)")

	assignIDsCmd.Flags().StringVar(&flagIDColumn, "id-column", config.DefaultIDColumn, "Name of the generated id column")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(assignIDsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("text-file") {
		cfg.TextFile = flagTextFile
	}
	if flags.Changed("text-column") {
		cfg.TextColumn = flagTextColumn
	}
	if flags.Changed("id-column") {
		cfg.IDColumn = flagIDColumn
	}
	if flags.Changed("extra-columns") {
		cfg.ExtraColumns = flagExtraColumns
	}
	if flags.Changed("label-file") {
		cfg.LabelFile = flagLabelFile
	}
	if flags.Changed("tags-file") {
		cfg.TagsFile = flagTagsFile
	}
	if flags.Changed("autosave") {
		cfg.AutoSave = flagAutoSave
	}
	if flags.Changed("start-index") {
		idx := flagStartIndex
		cfg.StartIndex = &idx
	}
	if flags.Changed("highlight-regex") {
		cfg.HighlightRegex = flagHighlightRegex
	}
	if flags.Changed("highlight-color") {
		cfg.HighlightColor = flagHighlightColor
	}
	if flags.Changed("theme") {
		cfg.Theme = flagTheme
	}
	if flags.Changed("hansard") {
		cfg.HansardTags = flagHansard
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is everything a labelling run needs, assembled from the config.
type session struct {
	cfg    *config.Config
	store  *record.Store
	state  *annotate.State
	files  persist.Files
	cursor *nav.Cursor
	log    *ui.SessionLog
}

// buildSession loads the records and any existing annotations. Missing
// annotation files are normal for a fresh session and only logged.
func buildSession(cfg *config.Config) (*session, error) {
	log := ui.NewSessionLog(0)

	store, err := record.Load(cfg.TextFile, cfg.IDColumn, cfg.TextColumn, cfg.ExtraColumns)
	if err != nil {
		return nil, err
	}
	logging.Boot("loaded %d records from %s", store.Len(), cfg.TextFile)

	files := persist.Files{
		IDColumn:        cfg.IDColumn,
		LabelPath:       cfg.LabelFile,
		TagsPath:        cfg.TagsFile,
		AutoSaveEnabled: cfg.AutoSave,
	}

	state := annotate.NewState()
	if err := files.LoadLabels(state); err != nil {
		if !persist.IsNotExist(err) {
			return nil, err
		}
		log.Addf("No label file at %s yet, starting fresh.", cfg.LabelFile)
		logging.Persist("label file %s missing, starting fresh", cfg.LabelFile)
	} else {
		log.Addf("Loaded %d labels from %s.", state.LabelCount(), cfg.LabelFile)
	}
	if err := files.LoadTags(state); err != nil {
		if !persist.IsNotExist(err) {
			return nil, err
		}
		log.Addf("No tags file at %s yet, starting fresh.", cfg.TagsFile)
		logging.Persist("tags file %s missing, starting fresh", cfg.TagsFile)
	} else {
		log.Addf("Loaded %d tag sets from %s.", state.TagCount(), cfg.TagsFile)
	}

	start := nav.StartIndex(cfg.StartIndex, state, store)
	cursor := nav.New(store.Len(), start)
	logging.Nav("starting at position %d of %d", cursor.Current(), store.Len())

	return &session{
		cfg:    cfg,
		store:  store,
		state:  state,
		files:  files,
		cursor: cursor,
		log:    log,
	}, nil
}

// runLabelling starts the interactive labelling interface.
func runLabelling(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := logging.Initialize(".", logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return err
	}
	defer logging.CloseAll()

	s, err := buildSession(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		ui.NewModel(s.cfg, s.store, s.state, s.files, s.cursor, s.log),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}

// runStats prints annotation progress for the configured session.
func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := buildSession(cfg)
	if err != nil {
		return err
	}
	logger.Debug("session loaded",
		zap.Int("records", s.store.Len()),
		zap.Int("labels", s.state.LabelCount()),
		zap.Int("tag_sets", s.state.TagCount()))

	fmt.Printf("Records:  %d\n", s.store.Len())
	fmt.Printf("Labelled: %d\n", s.state.LabelCount())
	fmt.Printf("Tagged:   %d\n", s.state.TagCount())

	bySentiment := make(map[string]int)
	for _, e := range s.state.Sentiments() {
		bySentiment[e.Sentiment]++
	}
	if len(bySentiment) > 0 {
		fmt.Println("\nSentiments:")
		for _, option := range cfg.SentimentOptions {
			if n := bySentiment[option]; n > 0 {
				fmt.Printf("  %-20s %d\n", option, n)
				delete(bySentiment, option)
			}
		}
		// Sentiments from older sessions that are not in the current
		// option list still count.
		other := make([]string, 0, len(bySentiment))
		for name := range bySentiment {
			other = append(other, name)
		}
		sort.Strings(other)
		for _, name := range other {
			fmt.Printf("  %-20s %d\n", name, bySentiment[name])
		}
	}

	byTag := make(map[string]int)
	for _, e := range s.state.Tags() {
		for _, t := range e.Tags {
			byTag[t]++
		}
	}
	if len(byTag) > 0 {
		fmt.Println("\nTags:")
		names := make([]string, 0, len(byTag))
		for t := range byTag {
			names = append(names, t)
		}
		sort.Strings(names)
		for _, t := range names {
			fmt.Printf("  %-20s %d\n", t, byTag[t])
		}
	}
	return nil
}

// runInit writes a starter config from the session flags.
func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	cfg := config.Default()
	if flagTextFile != "" {
		cfg.TextFile = flagTextFile
	}
	if flagTextColumn != "" {
		cfg.TextColumn = flagTextColumn
	}
	if cmd.Flags().Changed("id-column") {
		cfg.IDColumn = flagIDColumn
	}
	cfg.ExtraColumns = flagExtraColumns
	if flagLabelFile != "" {
		cfg.LabelFile = flagLabelFile
	}
	if cmd.Flags().Changed("tags-file") {
		cfg.TagsFile = flagTagsFile
	}
	cfg.AutoSave = flagAutoSave
	cfg.HighlightRegex = flagHighlightRegex
	if cmd.Flags().Changed("highlight-color") {
		cfg.HighlightColor = flagHighlightColor
	}
	cfg.Theme = flagTheme
	cfg.HansardTags = flagHansard

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	header := "# widgelabel session config. Flags override any value here;\n" +
		"# WIDGELABEL_LABEL_FILE, WIDGELABEL_TAGS_FILE and WIDGELABEL_AUTOSAVE\n" +
		"# override both.\n"
	body, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, append([]byte(header), body...), 0o644); err != nil {
		return err
	}
	logger.Info("wrote config", zap.String("path", configPath))
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

// runAssignIDs copies a CSV file with a generated id column prepended.
func runAssignIDs(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]
	column := flagIDColumn
	if strings.TrimSpace(column) == "" {
		column = config.DefaultIDColumn
	}

	if err := record.AssignIDs(src, dst, column); err != nil {
		return err
	}
	logger.Info("assigned ids",
		zap.String("source", src),
		zap.String("output", dst),
		zap.String("column", column))
	fmt.Printf("Wrote %s with id column %q\n", dst, column)
	return nil
}
