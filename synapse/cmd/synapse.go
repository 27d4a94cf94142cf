// Command-line interface entrypoint for the Synapse harvester and intention bar
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"synapse/synapse/config"
	"synapse/synapse/middlewares"
	"synapse/synapse/services/harvester"
	"synapse/synapse/services/ingest"
	"synapse/synapse/services/scraper"
	"synapse/synapse/services/search"
	"synapse/synapse/services/widget"
	"synapse/synapse/utils/color"
	"synapse/synapse/utils/jsonutils"
	"synapse/synapse/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, cfgErr := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError("cannot create log dir: "+err.Error()))
		os.Exit(1)
	}
	defer logging.Sync()
	if cfgErr != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(cfgErr.Error()))
		os.Exit(1)
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		color.Disable()
	}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "harvest":
		err = runHarvest(cfg, args[1:])
	case "search":
		err = runSearch(cfg)
	case "token":
		err = runToken(cfg, args[1:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Synapse CLI usage:")
	fmt.Println("  synapse harvest <url> [--dry-run]   # Extract products from a page and ingest them")
	fmt.Println("  synapse search                      # Type queries; results render as you go")
	fmt.Println("  synapse token <subject> [ttl]       # Mint a harvest trigger token (ttl default 24h)")
}

func runHarvest(cfg config.Config, args []string) error {
	var target string
	dryRun := false
	for _, a := range args {
		if a == "--dry-run" {
			dryRun = true
			continue
		}
		target = a
	}
	if target == "" {
		return fmt.Errorf("harvest: missing url")
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	fetcher, closeFetcher, err := scraper.NewFetcher(cfg.Fetcher, httpClient)
	if err != nil {
		return err
	}
	defer closeFetcher()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	h := harvester.New(cfg.Schema, fetcher, ingest.NewClient(cfg.APIBaseURL, httpClient))

	if dryRun {
		doc, err := h.Load(ctx, harvester.Page{URL: target})
		if err != nil {
			return err
		}
		fmt.Println(jsonutils.ToJSON(h.Extract(doc)))
		return nil
	}

	report, err := h.Run(ctx, harvester.Page{URL: target})
	if err != nil {
		return err
	}
	fmt.Println(color.ColorInfo(fmt.Sprintf("%d products harvested: %s", report.Products, report.Message)))
	return nil
}

// runSearch treats every stdin line as the new value of the intention bar.
func runSearch(cfg config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := search.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout})
	bar := widget.NewBar(ctx, client, widget.NewTerminalRenderer(os.Stdout), widget.Options{
		MinQueryLength: cfg.MinQueryLength,
		Debounce:       cfg.Debounce,
		StaleGuard:     cfg.StaleGuard,
	})
	defer bar.Close()
	logging.AppLogger.Info("cli search session", zap.String("api", cfg.APIBaseURL))

	fmt.Println(color.ColorPrompt("Dime qué necesitas...") + " (type 'exit' to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		bar.Input(line)
	}

	settleCtx, settleCancel := context.WithTimeout(ctx, cfg.Debounce+10*time.Second)
	defer settleCancel()
	bar.Settle(settleCtx)
	return scanner.Err()
}

func runToken(cfg config.Config, args []string) error {
	if cfg.HarvestSecret == "" {
		return fmt.Errorf("token: SYNAPSE_HARVEST_SECRET is not set")
	}
	if len(args) == 0 {
		return fmt.Errorf("token: missing subject")
	}
	ttl := 24 * time.Hour
	if len(args) > 1 {
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return fmt.Errorf("token: %w", err)
		}
		ttl = d
	}
	token, err := middlewares.IssueToken(cfg.HarvestSecret, args[0], ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
