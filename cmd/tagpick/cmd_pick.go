package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ruminaider/tagpick/cmd/tagpick/tui"
	"github.com/ruminaider/tagpick/internal/catalog"
	"github.com/ruminaider/tagpick/internal/config"
	"github.com/ruminaider/tagpick/internal/logging"
	"github.com/ruminaider/tagpick/internal/multiselect"
	"github.com/ruminaider/tagpick/internal/paths"
)

var (
	itemsPath    string
	dbPath       string
	sqlQuery     string
	selectedKeys []string
	locale       string
	pickName     string
	pickHint     string
	pickOutput   string
	pickMaxRows  int
	pickWatch    bool
	pickConfirm  bool
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick items (default command)",
	Args:  cobra.NoArgs,
	RunE:  runPick,
}

func init() {
	addPickFlags(pickCmd)
}

// addCatalogFlags registers the flags that choose the item source.
func addCatalogFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&itemsPath, "items", "i", "", "Item file (.yaml, .json, .toml, or key<TAB>text lines; - for stdin)")
	fs.StringVar(&dbPath, "db", "", "SQLite database to read items from")
	fs.StringVar(&sqlQuery, "query", catalog.DefaultQuery, "SQL query returning key and text columns (with --db)")
	fs.StringArrayVarP(&selectedKeys, "selected", "s", nil, "Value selected at start, as printed by --output value (repeatable)")
	fs.StringVar(&locale, "locale", "", "Locale for case-insensitive matching (e.g. tr)")
}

func addPickFlags(cmd *cobra.Command) {
	addCatalogFlags(cmd)
	fs := cmd.Flags()
	fs.StringVar(&pickName, "name", "", "Field name for form and json output")
	fs.StringVar(&pickHint, "placeholder", "", "Input placeholder text")
	fs.StringVarP(&pickOutput, "output", "o", "", "Output format: value, form, or json")
	fs.IntVar(&pickMaxRows, "max-rows", 0, "Maximum number of suggestion rows")
	fs.BoolVarP(&pickWatch, "watch", "w", false, "Reload the item file when it changes")
	fs.BoolVar(&pickConfirm, "confirm", false, "Ask for confirmation before printing the selection")
}

// loadConfig reads the config file, applies flags the user set and then
// validates the result. Commands without an --output flag never print a
// submitted value, so their output settings are not checked.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, cfg)
	if debugLog {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = paths.LogFile()
		}
	}

	validate := cfg.Validate
	if cmd.Flags().Lookup("output") == nil {
		validate = cfg.ValidateSettings
	}
	if err := validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("locale") {
		cfg.Locale = locale
	}
	if fs.Lookup("name") == nil {
		return
	}
	if fs.Changed("name") {
		cfg.Name = pickName
	}
	if fs.Changed("placeholder") {
		cfg.Placeholder = pickHint
	}
	if fs.Changed("output") {
		cfg.Output = pickOutput
	}
	if fs.Changed("max-rows") {
		cfg.MaxRows = pickMaxRows
	}
	if fs.Changed("confirm") {
		cfg.Confirm = pickConfirm
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, func() error, error) {
	lc, err := cfg.LoggingConfig()
	if err != nil {
		return nil, nil, err
	}
	return logging.New(lc)
}

// loadCatalog reads items from --db or --items.
func loadCatalog(ctx context.Context) (catalog.Catalog, error) {
	switch {
	case dbPath != "" && itemsPath != "":
		return catalog.Catalog{}, fmt.Errorf("--items and --db cannot be combined")
	case dbPath != "":
		return catalog.FromSQLite(ctx, dbPath, sqlQuery)
	case itemsPath != "":
		return catalog.Load(itemsPath)
	default:
		return catalog.Catalog{}, fmt.Errorf("no items: use --items or --db")
	}
}

// newController builds a controller over cat. The initial selection is the
// catalog's selected keys followed by the keys of each serialized value in
// extra; keys not in the catalog are skipped.
func newController(cat catalog.Catalog, cfg *config.Config, extra []string, logger *zap.Logger) (*multiselect.Controller, error) {
	tag, err := cfg.Language()
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]multiselect.Item, len(cat.Items))
	for _, it := range cat.Items {
		byKey[it.Key] = it
	}
	keys := append([]string{}, cat.Selected...)
	for _, value := range extra {
		keys = append(keys, multiselect.ParseKeys(value)...)
	}
	var initial []multiselect.Item
	for _, key := range keys {
		it, ok := byKey[key]
		if !ok {
			logger.Warn("unknown selected key", zap.String("key", key))
			continue
		}
		initial = append(initial, it)
	}

	return multiselect.NewController(cat.Items,
		multiselect.WithPredicate(multiselect.BaseContains(tag)),
		multiselect.WithSelectedList(multiselect.NewSelectedList(initial...)),
	), nil
}

func runPick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	ctrl, err := newController(cat, cfg, selectedKeys, logger)
	if err != nil {
		return err
	}
	logger.Info("picker started",
		zap.Int("items", len(cat.Items)),
		zap.Int("selected", len(ctrl.SelectedKeys())))

	model := tui.NewModel(ctrl, tui.ModelOptions{
		Options: tui.Options{
			Placeholder: cfg.Placeholder,
			EmptyText:   cfg.EmptyText,
			MaxRows:     cfg.MaxRows,
			Logger:      logger,
		},
		MaxWidth: cfg.Width,
	})
	// The selection goes to stdout, so the picker draws on stderr.
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	)

	if pickWatch {
		w, err := catalog.NewWatcher(itemsPath, func(c catalog.Catalog, err error) {
			p.Send(tui.CatalogReloadedMsg{Catalog: c, Err: err})
		}, logger)
		if err != nil {
			return err
		}
		w.Start(ctx)
		defer w.Close()
	}

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	result := finalModel.(tui.Model).Result()
	if !result.Submitted {
		return errCancelled
	}

	if cfg.Confirm {
		ok, err := confirmSubmit(len(result.Keys))
		if err != nil {
			return err
		}
		if !ok {
			return errCancelled
		}
	}

	return writeResult(cmd.OutOrStdout(), cfg, result)
}

func confirmSubmit(n int) (bool, error) {
	ok := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Submit %d selected?", n)).
				Affirmative("Submit").
				Negative("Cancel").
				Value(&ok),
		),
	).WithOutput(os.Stderr).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
