package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"market_scout/internal/app/bootstrap"
	"market_scout/internal/app/port"
	"market_scout/internal/domain/entity"
	"market_scout/internal/infrastructure/resolver"
	"market_scout/internal/pkg/logger"
)

func main() {
	configPath := pflag.StringP("config", "c", "config/config.yml", "path to the YAML configuration file")
	pflag.Float64P("threshold", "t", 0, "minimum drop from all-time high in percent, 0 keeps every asset (default from config)")
	top := pflag.IntP("top", "n", 0, "number of scan results to print (default from config)")
	withWallets := pflag.Bool("wallets", true, "classify the addresses listed in the wallets file")
	withPortfolio := pflag.Bool("portfolio", true, "value the holdings listed in the holdings file")
	batch := pflag.Bool("batch", false, "never prompt; ambiguous or unknown addresses are reported as errors")
	pflag.Parse()

	_ = godotenv.Load() // Load .env if present

	app, err := bootstrap.New(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: %v\n", err)
		os.Exit(1)
	}
	defer app.ZapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := app.Config
	out := os.Stdout

	price, err := app.Prices.GetCurrentPrice(ctx, cfg.CLI.DefaultAsset, cfg.CLI.DefaultCurrency)
	if err != nil {
		logger.Error("Failed to fetch current price", "asset", cfg.CLI.DefaultAsset, "error", err)
		fmt.Fprintf(out, "Could not fetch the %s price: %v\n", cfg.CLI.DefaultAsset, err)
	} else {
		printPrice(out, cfg.CLI.DefaultAsset, cfg.CLI.DefaultCurrency, price)
	}

	req, err := scanRequest(app.ScanRequest(), pflag.CommandLine)
	if err != nil {
		logger.Error("Ignoring --threshold", "error", err)
	}
	limit := cfg.Scanner.TopN
	if *top > 0 {
		limit = *top
	}
	result, err := app.Scanner.Scan(ctx, req)
	printScan(out, result, limit, err)

	if *withWallets && ctx.Err() == nil {
		classifyWallets(ctx, app, *batch)
	}

	if *withPortfolio && ctx.Err() == nil {
		holdings, err := app.Holdings.GetHoldings()
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Info("No holdings file, skipping portfolio valuation", "path", cfg.Files.Holdings)
		case err != nil:
			fmt.Fprintf(out, "\nCould not read holdings: %v\n", err)
		default:
			printValuation(out, app.Portfolio.Value(ctx, holdings, cfg.CLI.DefaultCurrency))
		}
	}
}

func classifyWallets(ctx context.Context, app *bootstrap.App, batch bool) {
	wallets, err := app.Wallets.GetWallets()
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("No wallets file, skipping classification", "path", app.Config.Files.Wallets)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stdout, "\nCould not read wallets: %v\n", err)
		return
	}

	var ambiguity port.AmbiguityResolver = resolver.FailClosed{}
	var unknown port.UnknownResolver = resolver.FailClosed{}
	if !batch && resolver.IsInteractive(os.Stdin) {
		prompt := resolver.NewPrompt(os.Stdin, os.Stdout, resolver.DefaultMaxAttempts)
		ambiguity, unknown = prompt, prompt
	}
	classifier := app.Classifier(ambiguity, unknown)

	results := make([]walletOutcome, 0, len(wallets))
	for _, w := range wallets {
		c, err := classifier.ClassifyWithOverride(ctx, w.Address, w.Chain)
		results = append(results, walletOutcome{wallet: w, classification: c, err: err})
		if errors.Is(err, context.Canceled) {
			break
		}
	}
	printWallets(os.Stdout, results)
}

type walletOutcome struct {
	wallet         entity.Wallet
	classification entity.Classification
	err            error
}

// scanRequest applies --threshold to base when the flag was given, so an
// explicit 0 overrides the configured default.
func scanRequest(base entity.ScanRequest, flags *pflag.FlagSet) (entity.ScanRequest, error) {
	if !flags.Changed("threshold") {
		return base, nil
	}
	threshold, err := flags.GetFloat64("threshold")
	if err != nil {
		return base, fmt.Errorf("read --threshold: %w", err)
	}
	base.ThresholdPercent = threshold
	return base, nil
}
