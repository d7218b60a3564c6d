package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/contact-cli/internal/fetcher"
	"github.com/sells-group/contact-cli/internal/model"
)

var (
	mergeFormat string
	mergeOut    string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <a> <b> [more...]",
	Short: "Merge contact collections, keeping the first record seen per name",
	Long:  "Merges two or more collections in argument order. Inputs may be CSV, XLSX or the JSON written by normalize and merge.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		sources := make([][]model.ContactRecord, 0, len(args))
		for _, path := range args {
			recs, err := loadRecords(ctx, path)
			if err != nil {
				return err
			}
			sources = append(sources, recs)
		}

		merged, stats := eng.Merger.MergeAll(sources...)

		zap.L().Info("merge complete",
			zap.Strings("inputs", args),
			zap.Int("merged", stats.Merged),
			zap.Int("duplicates_skipped", stats.DuplicatesSkipped),
			zap.Int("nameless_rejected", stats.NamelessRejected),
		)
		for _, nd := range stats.NearDuplicates {
			zap.L().Warn("possible duplicate names",
				zap.String("a", nd.A),
				zap.String("b", nd.B),
				zap.Int("distance", nd.Distance),
			)
		}

		w, closeOut, err := openOutput(mergeOut, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := writeRecords(w, mergeFormat, merged, stats); err != nil {
			closeOut() //nolint:errcheck
			return err
		}
		return eris.Wrap(closeOut(), "close output")
	},
}

// loadRecords reads one merge input. JSON files hold a records document;
// anything else is loaded as a table.
func loadRecords(ctx context.Context, path string) ([]model.ContactRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "read records")
		}
		var doc collection
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, eris.Wrapf(fetcher.ErrMalformedCollection, "decode %s: %v", path, err)
		}
		return doc.Records, nil
	}

	rows, err := fetcher.LoadRows(ctx, path, loadOptions(cfg))
	if err != nil {
		return nil, eris.Wrap(err, "load collection")
	}
	recs := make([]model.ContactRecord, len(rows))
	for i, row := range rows {
		recs[i] = recordFromRow(row)
	}
	return recs, nil
}

func init() {
	mergeCmd.Flags().StringVar(&mergeFormat, "format", formatJSON, "output format: json or csv")
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(mergeCmd)
}
