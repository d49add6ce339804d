// Package main is the command-line entry point: it analyzes one trade document
// from a local path or s3:// URI and prints the report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/clients/source"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/config"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/analytics"
	"github.com/joshinitinofficial/algotest-trade-visualizer/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// options are the parsed command-line flags.
type options struct {
	input   string
	capital string
	format  string
	output  string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.input, "input", "", "trade document: local path or s3://bucket/key (required)")
	fs.StringVar(&opts.capital, "capital", "", "capital deployed in INR (default from ANALYZER_DEFAULT_CAPITAL)")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.StringVar(&opts.output, "output", "", "write the report to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.input == "" {
		fs.Usage()
		return nil, fmt.Errorf("-input is required")
	}
	switch opts.format {
	case formatText, formatJSON:
	default:
		return nil, fmt.Errorf("unknown -format %q", opts.format)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	// stdout carries the report, so logs go to stderr.
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: stderr,
	})

	capital, err := parseCapital(opts.capital, cfg.Capital())
	if err != nil {
		log.Error().Err(err).Msg("Invalid capital")
		return 2
	}

	loader, err := newLoader(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to set up document source")
		return 1
	}

	location, err := cfg.Location()
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve time zone")
		return 1
	}

	report, err := analyze(ctx, loader, analytics.NewService(location, log), opts.input, capital)
	if err != nil {
		log.Error().Err(err).Str("input", opts.input).Msg("Analysis failed")
		return 1
	}

	if opts.output == "" {
		if err := render(stdout, opts.format, report); err != nil {
			log.Error().Err(err).Msg("Failed to write report")
			return 1
		}
		return 0
	}

	if err := saveReport(opts.output, opts.format, report); err != nil {
		log.Error().Err(err).Str("output", opts.output).Msg("Failed to save report")
		return 1
	}
	log.Info().Str("output", opts.output).Msg("Report saved")
	return 0
}

// createOutput opens the -output destination.
var createOutput = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// saveReport renders into path; a failed close means the report may not be on disk.
func saveReport(path, format string, report *analytics.Report) error {
	f, err := createOutput(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := render(f, format, report); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

// newLoader routes local paths to the filesystem and s3:// URIs to S3.
func newLoader(ctx context.Context, cfg *config.Config, log zerolog.Logger) (source.Loader, error) {
	router := source.NewRouter(source.FileLoader{}, log)

	s3Loader, err := source.NewS3Loader(ctx, source.S3Options{
		Region:          cfg.S3.Region,
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		MaxBytes:        cfg.MaxUploadBytes,
	}, log)
	if err != nil {
		return nil, err
	}
	router.Register(source.SchemeS3, s3Loader)

	return router, nil
}

func analyze(ctx context.Context, loader source.Loader, service *analytics.Service, input string, capital decimal.Decimal) (*analytics.Report, error) {
	rc, err := loader.Open(ctx, input)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return service.AnalyzeDocument(ctx, rc, capital)
}

func parseCapital(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return fallback, nil
	}
	capital, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidCapital, raw)
	}
	if capital.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidCapital, capital)
	}
	return capital, nil
}
