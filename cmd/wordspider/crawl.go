package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wordspider/wordspider/internal/config"
	"github.com/wordspider/wordspider/internal/crawler"
	"github.com/wordspider/wordspider/internal/fetch"
	"github.com/wordspider/wordspider/internal/log"
	"github.com/wordspider/wordspider/internal/model"
	"github.com/wordspider/wordspider/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url> [max-depth]",
		Short: "Crawl a site and report word-frequency statistics",
		Long: `Crawl starts from the given seed address, follows same-host links up
to the maximum depth, fetches every discovered page exactly once, and
prints the visited addresses followed by the most frequent words.

The optional second argument sets the maximum depth. A value that does
not parse as an integer produces a warning and the default is used; the
crawl still runs.

Examples:
  # Crawl with the default depth
  wordspider crawl https://example.com

  # Crawl only the seed page
  wordspider crawl https://example.com 0

  # Markdown report written to a file
  wordspider crawl --markdown -o report.md https://example.com 3`,
		Args: cobra.MaximumNArgs(2),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link recursion depth (overrides the positional argument)")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Maximum number of concurrent page fetches")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout per request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header for HTTP requests")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wordspider in current or home directory)")

	// Report flags
	cmd.Flags().IntP("top", "n", config.DefaultTopWords,
		"Number of top words to print")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	// No seed address is a usage error: print usage, exit 0.
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	return runCrawl(cmd.Context(), cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the
// positional arguments.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Seed = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	// Positional depth applies only when the flag was not given. A
	// value that fails to parse is a warning, not an error: the run
	// continues with the default.
	if len(args) > 1 && !cmd.Flags().Changed("depth") {
		depth, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"Incorrect max depth %q, using default %d\n", args[1], config.DefaultMaxDepth)
		} else {
			cfg.MaxDepth = depth
		}
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.TopWords, err = cmd.Flags().GetInt("top")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-host configuration. An explicitly requested file that
	// does not exist is an error; a missing default file is not.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.Hosts, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.Hosts = &config.File{Hosts: make(map[string]config.HostConfig)}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	applyHostConfig(cfg)

	return cfg, nil
}

// applyHostConfig merges per-host config-file overrides for the seed's
// host into the run configuration.
func applyHostConfig(cfg *config.Config) {
	if cfg.Hosts == nil {
		return
	}

	u, err := url.Parse(cfg.Seed)
	if err != nil {
		// The crawler reports malformed seeds with a proper error.
		return
	}

	hc := cfg.Hosts.GetHostConfig(u.Host)
	if hc.Depth > 0 {
		cfg.MaxDepth = hc.Depth
	}
	if hc.UserAgent != "" {
		cfg.UserAgent = hc.UserAgent
	}
	if len(hc.SkipExtensions) > 0 {
		cfg.SkipExtensions = append(cfg.SkipExtensions, hc.SkipExtensions...)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runCrawl executes the crawl and renders the report.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var hostCfg config.HostConfig
	if cfg.Hosts != nil {
		if u, err := url.Parse(cfg.Seed); err == nil {
			hostCfg = cfg.Hosts.GetHostConfig(u.Host)
		}
	}

	fetchOpts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	}
	if len(hostCfg.Headers) > 0 {
		fetchOpts = append(fetchOpts, fetch.WithHeaders(hostCfg.Headers))
	}
	if hostCfg.Cookie != "" {
		fetchOpts = append(fetchOpts, fetch.WithCookie(hostCfg.Cookie))
	}

	spider := crawler.NewSpider(
		fetch.NewHTTPFetcher(fetchOpts...),
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithWorkers(cfg.Workers),
		crawler.WithSkipExtensions(cfg.SkipExtensions),
		crawler.WithLogger(logger),
	)

	crawlReport, err := spider.Crawl(ctx, cfg.Seed)
	if err != nil {
		return err
	}

	return outputReport(cfg, crawlReport)
}

// outputReport renders the crawl report in the requested format.
func outputReport(cfg *config.Config, crawlReport *model.CrawlReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	if cfg.JSONReport {
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(crawlReport)
	}

	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(crawlReport, cfg.TopWords)
		return err
	}

	writer := report.NewTextWriter(output)
	_, err := writer.Write(crawlReport, cfg.TopWords)
	return err
}
