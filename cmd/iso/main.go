package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rahulkamble366/iso/config"
	"github.com/rahulkamble366/iso/pkg/analyzer"
	"github.com/rahulkamble366/iso/pkg/converter"
	"github.com/rahulkamble366/iso/pkg/otel"
	"github.com/rahulkamble366/iso/pkg/pipeline"
	"github.com/rahulkamble366/iso/pkg/table"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "iso.yaml", "config file")
	outputFlag := flag.String("output", "", "output directory")
	analyzerFlag := flag.String("analyzer", "", "analyzer id")
	pagesFlag := flag.String("pages", "", "comma separated page numbers")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if otel.EnableDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	shutdown, err := otel.Setup(ctx, "iso", version)

	if err != nil {
		slog.Warn("telemetry setup failed", "error", err)
	}

	err = run(ctx, flag.Arg(0), *configFlag, *outputFlag, *analyzerFlag, *pagesFlag)

	if err != nil {
		slog.Error("extraction failed", "error", err)
	}

	shutdown(context.Background())

	if err != nil {
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context, input, path, output, id, pages string) error {
	cfg, err := config.Parse(path)

	if err != nil {
		return err
	}

	defer cfg.Close()

	if output == "" {
		output = cfg.Output
	}

	var options []pipeline.Option

	if pages != "" {
		numbers, err := parsePages(pages)

		if err != nil {
			return err
		}

		options = append(options, pipeline.WithAnalyzeOptions(&analyzer.AnalyzeOptions{
			Pages: numbers,
		}))
	}

	p, err := cfg.Pipeline(id, options...)

	if err != nil {
		return err
	}

	result, err := p.Run(ctx, input)

	if err != nil {
		return err
	}

	if err := p.Write(ctx, output, result); err != nil {
		return err
	}

	slog.Info("results written", "output", output, "pages", len(result.Document.Pages), "tables", len(result.Tables))

	return nil
}

func parsePages(val string) ([]int, error) {
	var pages []int

	for _, s := range strings.Split(val, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))

		if err != nil || n < 1 {
			return nil, errors.New("invalid page number: " + s)
		}

		pages = append(pages, n)
	}

	return pages, nil
}

func exitCode(err error) int {
	var unsupported *converter.UnsupportedFormatError
	var conversion *converter.ConversionError
	var malformed *table.MalformedCellError
	var analysis *analyzer.AnalysisError

	switch {
	case errors.As(err, &unsupported):
		return 3
	case errors.As(err, &conversion):
		return 4
	case errors.As(err, &analysis):
		return 5
	case errors.As(err, &malformed):
		return 6
	}

	return 1
}
