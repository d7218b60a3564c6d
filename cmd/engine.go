package main

import (
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-cli/internal/config"
	"github.com/sells-group/contact-cli/internal/dedupe"
	"github.com/sells-group/contact-cli/internal/dummy"
	"github.com/sells-group/contact-cli/internal/extract"
	"github.com/sells-group/contact-cli/internal/fetcher"
	"github.com/sells-group/contact-cli/internal/normalize"
	"github.com/sells-group/contact-cli/internal/numplan"
	"github.com/sells-group/contact-cli/internal/patterns"
)

// engine bundles the components every command works with.
type engine struct {
	Extractor  *extract.Extractor
	Normalizer *normalize.Normalizer
	Merger     *dedupe.Merger
}

func newEngine(c *config.Config) (*engine, error) {
	ex := extract.Default()
	if c.Extract.PatternsFile != "" {
		data, err := os.ReadFile(c.Extract.PatternsFile)
		if err != nil {
			return nil, eris.Wrap(err, "read patterns file")
		}
		lib, err := patterns.Load(data)
		if err != nil {
			return nil, eris.Wrapf(err, "load patterns from %s", c.Extract.PatternsFile)
		}
		ex = extract.New(lib)
	}

	n := normalize.New(numplan.Default(), dummy.Default(), normalize.Options{
		Placeholders: c.Normalize.Placeholders,
		Workers:      c.Normalize.Workers,
	})
	m := dedupe.NewMerger(n, dedupe.Options{
		Policy:                dedupe.Policy(c.Merge.Policy),
		NearDuplicateDistance: c.Merge.NearDuplicateDistance,
	})
	return &engine{Extractor: ex, Normalizer: n, Merger: m}, nil
}

func loadOptions(c *config.Config) fetcher.LoadOptions {
	return fetcher.LoadOptions{
		Encoding:   c.Load.Encoding,
		Delimiter:  c.Load.DelimiterRune(),
		SheetName:  c.Load.Sheet,
		SheetIndex: c.Load.SheetIndex,
	}
}
