// Package catalog exports the benchmark registry as JSONL. Each line
// describes one case: its suite, name, variant and literal arguments.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/weiihann/fluidbench/suite"
)

// Entry is a single case descriptor in the catalog.
type Entry struct {
	Suite   string        `json:"suite"`
	Case    string        `json:"case"`
	Variant suite.Variant `json:"variant"`
	Params  suite.Params  `json:"params,omitempty"`
}

// Summary contains counts about the written catalog.
type Summary struct {
	Suites      int
	TotalCases  int
	PlainCases  int
	KernelCases int
}

// Write writes one JSON line per case of suites to w and returns a Summary.
func Write(w io.Writer, suites []suite.Suite) (Summary, error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	var summary Summary

	for _, s := range suites {
		for _, c := range s.Cases {
			if err := enc.Encode(Entry{
				Suite:   s.Name,
				Case:    c.Name,
				Variant: c.Variant,
				Params:  c.Params,
			}); err != nil {
				return summary, fmt.Errorf("encode %s: %w", c.ID(s.Name), err)
			}

			summary.TotalCases++
			if c.Variant == suite.Kernel {
				summary.KernelCases++
			} else {
				summary.PlainCases++
			}
		}

		summary.Suites++
	}

	return summary, nil
}

// Read decodes a catalog written by Write.
func Read(r io.Reader) ([]Entry, error) {
	dec := json.NewDecoder(r)

	var entries []Entry
	for dec.More() {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			return entries, fmt.Errorf("decode entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
