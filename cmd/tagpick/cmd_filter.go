package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var filterCmd = &cobra.Command{
	Use:   "filter <text>",
	Short: "Print the items a query would suggest, without the picker",
	Long: "filter applies the same matching and exclusion rules as the picker and prints " +
		"each suggestion as key<TAB>text.",
	Args: cobra.ExactArgs(1),
	RunE: runFilter,
}

func init() {
	addCatalogFlags(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	ctrl, err := newController(cat, cfg, selectedKeys, logger)
	if err != nil {
		return err
	}

	ctrl.InputChange(args[0])
	visible := ctrl.Visible()
	logger.Debug("filter", zap.String("query", args[0]), zap.Int("matches", len(visible)))

	out := cmd.OutOrStdout()
	for _, it := range visible {
		fmt.Fprintf(out, "%s\t%s\n", it.Key, it.Text)
	}
	return nil
}
