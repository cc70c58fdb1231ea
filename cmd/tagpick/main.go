package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// errCancelled ends the process with a non-zero status and no message.
var errCancelled = errors.New("cancelled")

var (
	configPath string
	debugLog   bool
)

var rootCmd = &cobra.Command{
	Use:   "tagpick",
	Short: "Pick several items from a list with type-to-filter autocomplete",
	Long: "tagpick shows a searchable list of items, lets you collect any number of them as tags, " +
		"and prints the selection as a comma-separated value.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: pick
		return runPick(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tagpick %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/tagpick/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Write debug logs (default ~/.local/state/tagpick/tagpick.log)")
	addPickFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(filterCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errCancelled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
