// Command romanize prints the romaji of every kana line read from stdin.
// Characters outside the kana table are copied through unchanged.
//
// Flags:
//
//	--kana-table  optional kana CSV (kana,romaji,type,stroke_count)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/heartmarshall/nihongo-dataset/internal/dataset"
	"github.com/heartmarshall/nihongo-dataset/internal/kana"
)

func main() {
	tableFlag := flag.String("kana-table", "", "path to a kana table CSV (default: built-in table)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	table := kana.Default()
	if *tableFlag != "" {
		rows, err := dataset.ReadKanaTableFile(*tableFlag)
		if err != nil {
			logger.Error("read kana table", slog.String("error", err.Error()))
			os.Exit(1)
		}
		table, err = kana.NewTable(rows)
		if err != nil {
			logger.Error("build kana table", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	tr := table.Transliterator()

	scanner := bufio.NewScanner(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		if romaji := tr.RomanizePtr(&line); romaji != nil {
			fmt.Fprintln(out, *romaji)
		} else {
			fmt.Fprintln(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("read stdin", slog.String("error", err.Error()))
		out.Flush()
		os.Exit(1)
	}
}
