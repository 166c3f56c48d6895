package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/vendor-profiler/internal/config"
	"github.com/jonathan/vendor-profiler/internal/db"
	"github.com/jonathan/vendor-profiler/internal/extraction"
	"github.com/jonathan/vendor-profiler/internal/fetch"
	"github.com/jonathan/vendor-profiler/internal/llm"
	"github.com/jonathan/vendor-profiler/internal/observability"
	"github.com/jonathan/vendor-profiler/internal/pipeline"
	"github.com/jonathan/vendor-profiler/internal/reconcile"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a vendor website and produce a structured profile",
	Long: `Fetches a vendor website, extracts company, product, integration, contact,
and compliance information, and prints the reconciled profile as JSON.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath  string
	analyzeURL         string
	analyzeAPIKey      string
	analyzeDatabaseURL string
	analyzeUseBrowser  bool
	analyzeVerbose     bool
	analyzeStream      bool
	analyzeSave        bool
	analyzeFetchOnly   bool
	analyzeTimeout     int
)

func init() {
	// Config file flag (processed first)
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCommand.Flags().StringVarP(&analyzeURL, "url", "u", "", "Vendor website URL to analyze")
	analyzeCommand.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")
	analyzeCommand.Flags().BoolVar(&analyzeStream, "stream", false, "Extract sections sequentially and print progress as they complete")
	analyzeCommand.Flags().BoolVar(&analyzeSave, "save", false, "Store the reconciled profile in the database")
	analyzeCommand.Flags().BoolVar(&analyzeFetchOnly, "fetch-only", false, "Fetch the website and print a content summary without extracting")
	analyzeCommand.Flags().IntVar(&analyzeTimeout, "timeout", 0, "Website fetch timeout in seconds")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for catalog lookups and run bookkeeping
	analyzeCommand.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("url") {
		cfg.URL = analyzeURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = analyzeUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("timeout") {
		cfg.FetchTimeout = analyzeTimeout
	}

	// Step 3: Validate required fields
	if cfg.URL == "" {
		return fmt.Errorf("--url must be provided (via flag or config)")
	}

	fetchOpts := &fetch.Options{
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	}
	if cfg.FetchTimeout > 0 {
		fetchOpts.Timeout = time.Duration(cfg.FetchTimeout) * time.Second
	}

	// Fetch-only mode inspects what the extractor would see, without an API
	// key or database.
	if analyzeFetchOnly {
		content, err := fetch.NewRetriever(fetchOpts).Fetch(ctx, cfg.URL)
		if err != nil {
			return fmt.Errorf("content retrieval failed: %w", err)
		}
		observability.NewPrinter(os.Stdout).PrintWebsiteContent(content)
		return nil
	}

	// Step 4: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Step 5: Database URL handling. The database is optional for one-shot
	// analyses: without it, categorization uses the built-in keyword table
	// and nothing is persisted.
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if analyzeSave && cfg.DatabaseURL == "" {
		return fmt.Errorf("--save requires DATABASE_URL environment variable or --db-url flag")
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
	}

	llmClient, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer llmClient.Close() //nolint:errcheck

	// db.DB satisfies the catalog and run store interfaces; pass nil when
	// running without a database.
	var catalog reconcile.CatalogSource
	var store pipeline.RunStore
	if database != nil {
		catalog = database
		store = database
	}

	orchestrator := pipeline.NewOrchestrator(
		fetch.NewRetriever(fetchOpts),
		extraction.NewExtractor(llmClient),
		reconcile.New(catalog),
		store,
	)

	printer := observability.NewPrinter(os.Stderr)

	var profile map[string]any
	if analyzeStream {
		profile, err = orchestrator.RunStream(ctx, cfg.URL, func(event pipeline.ProgressEvent) {
			switch event.Type {
			case pipeline.EventStatus:
				_, _ = fmt.Fprintln(os.Stderr, event.Message)
			case pipeline.EventError:
				_, _ = fmt.Fprintln(os.Stderr, "Warning: "+event.Message)
			case pipeline.EventSection:
				if cfg.Verbose {
					if result, ok := event.Data.(map[string]any); ok {
						printer.PrintSectionResult(event.DisplayName, result, event.Defaulted)
					}
				}
			}
		})
	} else {
		profile, err = orchestrator.Run(ctx, cfg.URL)
	}
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintVendorProfile(profile)
	}

	if analyzeSave {
		if _, err := database.UpsertVendorProfile(ctx, cfg.URL, profile); err != nil {
			return fmt.Errorf("failed to save vendor profile: %w", err)
		}
		if cfg.Verbose {
			_, _ = fmt.Fprintln(os.Stderr, "Profile saved.")
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(profile)
}
