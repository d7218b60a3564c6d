package fetcher

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/contact-cli/internal/model"
)

// ErrMalformedCollection marks a source that cannot be read as a contact
// collection: unreadable, empty, or without a column that maps to name.
var ErrMalformedCollection = eris.New("malformed collection")

// Provenance metadata keys added by LoadRows.
const (
	MetaSourceFile = "source_file"
	MetaSourceRow  = "source_row"
)

// headerSynonyms maps folded header spellings to canonical fields.
var headerSynonyms = map[string]model.Field{
	"name": model.FieldName, "이름": model.FieldName, "명칭": model.FieldName,
	"교회명": model.FieldName, "교회이름": model.FieldName, "기관명": model.FieldName,
	"단체명": model.FieldName, "상호": model.FieldName, "organization": model.FieldName,
	"church": model.FieldName,

	"category": model.FieldCategory, "분류": model.FieldCategory, "구분": model.FieldCategory,
	"종류": model.FieldCategory, "교단": model.FieldCategory, "type": model.FieldCategory,

	"homepage": model.FieldHomepage, "홈페이지": model.FieldHomepage, "웹사이트": model.FieldHomepage,
	"사이트": model.FieldHomepage, "website": model.FieldHomepage, "url": model.FieldHomepage,
	"web": model.FieldHomepage,

	"phone": model.FieldPhone, "전화": model.FieldPhone, "전화번호": model.FieldPhone,
	"대표전화": model.FieldPhone, "연락처": model.FieldPhone, "tel": model.FieldPhone,
	"telephone": model.FieldPhone,

	"fax": model.FieldFax, "팩스": model.FieldFax, "팩스번호": model.FieldFax,

	"email": model.FieldEmail, "이메일": model.FieldEmail, "전자우편": model.FieldEmail,
	"메일": model.FieldEmail, "mail": model.FieldEmail,

	"mobile": model.FieldMobile, "휴대폰": model.FieldMobile, "휴대전화": model.FieldMobile,
	"핸드폰": model.FieldMobile, "cell": model.FieldMobile, "cellphone": model.FieldMobile,

	"postalcode": model.FieldPostalCode, "우편번호": model.FieldPostalCode, "zip": model.FieldPostalCode,
	"zipcode": model.FieldPostalCode, "postcode": model.FieldPostalCode,

	"address": model.FieldAddress, "주소": model.FieldAddress, "소재지": model.FieldAddress,
	"도로명주소": model.FieldAddress, "지번주소": model.FieldAddress, "addr": model.FieldAddress,
}

func foldHeader(h string) string {
	h = strings.ToLower(norm.NFC.String(strings.TrimSpace(h)))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.', '\t':
			return -1
		}
		return r
	}, h)
}

// CanonicalHeader maps a column header onto a canonical field.
func CanonicalHeader(h string) (model.Field, bool) {
	f, ok := headerSynonyms[foldHeader(h)]
	return f, ok
}

// CanonicalRow renames synonym keys to canonical field names. A value
// already under the canonical key wins; otherwise the first non-empty
// synonym in key order does. Synonyms that lose stay under their own key.
func CanonicalRow(row model.Row) model.Row {
	out := make(model.Row, len(row))
	keys := slices.Sorted(maps.Keys(row))
	var synonyms []string
	for _, k := range keys {
		if f, ok := CanonicalHeader(k); ok && k != string(f) {
			synonyms = append(synonyms, k)
			continue
		}
		out[k] = row[k]
	}
	for _, k := range synonyms {
		f, _ := CanonicalHeader(k)
		if out[string(f)] == "" && row[k] != "" {
			out[string(f)] = row[k]
			continue
		}
		out[k] = row[k]
	}
	return out
}

// LoadOptions configures LoadRows.
type LoadOptions struct {
	Encoding   string // CSV only
	Delimiter  rune   // CSV only; ".tsv" files default to tab
	SheetName  string // XLSX only
	SheetIndex int    // XLSX only
}

// LoadRows reads a CSV or XLSX collection and maps each data row onto
// canonical field names. The first row is the header. Columns with unknown
// headers become metadata under their header text, and every row carries
// source_file and source_row. Blank rows are skipped.
func LoadRows(ctx context.Context, path string, opts LoadOptions) ([]model.Row, error) {
	records, err := readRecords(ctx, path, opts)
	if err != nil {
		return nil, eris.Wrapf(ErrMalformedCollection, "fetcher: read %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, eris.Wrapf(ErrMalformedCollection, "fetcher: %s has no header row", path)
	}

	keys, err := headerKeys(records[0])
	if err != nil {
		return nil, eris.Wrapf(ErrMalformedCollection, "fetcher: %s: %v", path, err)
	}

	source := filepath.Base(path)
	rows := make([]model.Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := make(model.Row, len(keys)+2)
		for j, key := range keys {
			if j < len(rec) {
				row[key] = rec[j]
			}
		}
		row[MetaSourceFile] = source
		row[MetaSourceRow] = strconv.Itoa(i + 2)
		rows = append(rows, row)
	}
	return rows, nil
}

func readRecords(ctx context.Context, path string, opts LoadOptions) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, XLSXOptions{SheetIndex: opts.SheetIndex, SheetName: opts.SheetName})
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: open file")
	}
	defer f.Close() //nolint:errcheck

	delim := opts.Delimiter
	if delim == 0 && strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}
	return ReadCSV(ctx, f, CSVOptions{
		Delimiter:  delim,
		Encoding:   opts.Encoding,
		LazyQuotes: true,
		TrimSpace:  true,
	})
}

// headerKeys returns the row key for each column. The first column mapping to
// a field takes the canonical name; later ones keep their header text.
func headerKeys(header []string) ([]string, error) {
	keys := make([]string, len(header))
	taken := make(map[string]bool)
	hasName := false
	for i, h := range header {
		key := strings.TrimSpace(h)
		if f, ok := CanonicalHeader(h); ok && !taken[string(f)] {
			key = string(f)
			hasName = hasName || f == model.FieldName
		}
		if key == "" || taken[key] {
			key = fmt.Sprintf("column_%d", i+1)
		}
		taken[key] = true
		keys[i] = key
	}
	if !hasName {
		return nil, eris.Errorf("no column maps to name (header %q)", header)
	}
	return keys, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
