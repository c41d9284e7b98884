// Command pipeline builds the Japanese learning dataset: it reads the JLPT
// vocabulary table, extracts and enriches kanji, derives romaji and stroke
// counts, and writes the cleaned tables (optionally also to PostgreSQL).
//
// Configuration comes from CONFIG_PATH (fallback ./config.yaml) and the
// environment. Flags override the loaded values:
//
//	--dry-run      run every phase but write no files and no rows
//	--skip-enrich  do not contact the kanji provider
//	--output-dir   directory for the output CSV files
//
// Exit codes: 0 = success (individual kanji lookups may have failed),
// 1 = fatal error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/nihongo-dataset/internal/app"
)

func main() {
	dryRunFlag := flag.Bool("dry-run", false, "run without writing output files or database rows")
	skipEnrichFlag := flag.Bool("skip-enrich", false, "skip external kanji lookups")
	outputDirFlag := flag.String("output-dir", "", "directory for output CSV files (overrides config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.Run(ctx, app.Overrides{
		DryRun:     *dryRunFlag,
		SkipEnrich: *skipEnrichFlag,
		OutputDir:  *outputDirFlag,
	})
	if err != nil {
		slog.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
