package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wordspider.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordspider",
		Short: "Same-host web crawler with word-frequency statistics",
		Long: `wordspider crawls a web site starting from a seed address, visiting
every same-host page exactly once up to a configurable depth, and
reports aggregate word-frequency statistics across all visited pages.

Pages are fetched concurrently by a bounded worker pool; a shared
visited registry guarantees each address is fetched at most once.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
