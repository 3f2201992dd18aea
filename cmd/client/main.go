package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rahulkamble366/iso/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")
	analyzerFlag := flag.String("analyzer", "", "analyzer id")
	formatFlag := flag.String("format", "json", "output format: json, html or markdown")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		os.Exit(2)
	}

	ctx := context.Background()

	var options []client.RequestOption

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	path := flag.Arg(0)

	f, err := os.Open(path)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	defer f.Close()

	input := client.ExtractionRequest{
		Name:   filepath.Base(path),
		Reader: f,

		Analyzer: *analyzerFlag,
	}

	switch *formatFlag {
	case "json":

	case "html", "markdown":
		text, err := render(ctx, c, input, *formatFlag)

		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Print(text)
		return

	default:
		fmt.Fprintln(os.Stderr, "invalid format: "+*formatFlag)
		os.Exit(2)
	}

	doc, err := c.Extractions.New(ctx, input)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	enc.Encode(doc)
}

func render(ctx context.Context, c *client.Client, input client.ExtractionRequest, format string) (string, error) {
	if format == "markdown" {
		return c.Extractions.Markdown(ctx, input)
	}

	return c.Extractions.Tables(ctx, input)
}
