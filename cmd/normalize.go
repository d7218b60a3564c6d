package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/contact-cli/internal/fetcher"
)

var (
	normalizeFormat string
	normalizeOut    string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Normalize a CSV or XLSX contact collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		rows, err := fetcher.LoadRows(ctx, args[0], loadOptions(cfg))
		if err != nil {
			return eris.Wrap(err, "load collection")
		}

		recs, stats := eng.Normalizer.NormalizeAll(rows)

		zap.L().Info("normalize complete",
			zap.String("input", args[0]),
			zap.Int("input_rows", stats.Input),
			zap.Int("normalized", stats.Normalized),
			zap.Int("nameless_rejected", stats.NamelessRejected),
		)

		w, closeOut, err := openOutput(normalizeOut, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := writeRecords(w, normalizeFormat, recs, stats); err != nil {
			closeOut() //nolint:errcheck
			return err
		}
		return eris.Wrap(closeOut(), "close output")
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeFormat, "format", formatJSON, "output format: json or csv")
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(normalizeCmd)
}
