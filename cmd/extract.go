package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/contact-cli/internal/model"
	"github.com/sells-group/contact-cli/internal/scrape"
)

var (
	extractHTML bool
	extractName string
)

// extractResult is what the extract command prints.
type extractResult struct {
	Fields map[model.Field][]string `json:"fields"`
	Record *model.ContactRecord     `json:"record,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract contact fields from page text or HTML",
	Long:  "Reads text from a file or stdin and prints every contact value found. With --name the first values are also normalized into a record.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
			path string
		)
		if len(args) == 1 && args[0] != "-" {
			path = args[0]
			data, err = os.ReadFile(path)
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return eris.Wrap(err, "read input")
		}

		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}

		page := scrape.Page{Text: string(data)}
		if extractHTML || isHTMLFile(path) {
			if page, err = scrape.Convert(page.Text); err != nil {
				return eris.Wrap(err, "convert html")
			}
		}

		res := extractResult{Fields: eng.Extractor.ExtractAll(page.Text)}
		if extractName != "" {
			row := eng.Extractor.ExtractRow(page.Text)
			row[string(model.FieldName)] = extractName
			if page.Title != "" {
				row[scrape.MetaPageTitle] = page.Title
			}
			if rec, ok := eng.Normalizer.Normalize(row); ok {
				res.Record = &rec
			}
		}

		zap.L().Debug("extract complete",
			zap.String("input", path),
			zap.Int("fields", len(res.Fields)),
		)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return eris.Wrap(enc.Encode(res), "write result")
	},
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func init() {
	extractCmd.Flags().BoolVar(&extractHTML, "html", false, "treat input as HTML (implied for .html and .htm files)")
	extractCmd.Flags().StringVar(&extractName, "name", "", "organization name; also prints a normalized record")
	rootCmd.AddCommand(extractCmd)
}
