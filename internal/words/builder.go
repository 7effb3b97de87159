// internal/words/builder.go
//
// Offline dictionary builder.
// Reads tab-separated frequency tables (header row first, candidate word in
// column 1), normalizes every candidate and keeps the valid 4-letter ones.
//
// Any read or parse error aborts the build; callers must not write output
// for a failed build.

package words

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/robalobadob/arabic-wordle/internal/arabic"
)

// wordColumn is the 0-based column holding the candidate word.
const wordColumn = 1

// Builder accumulates the union of qualifying words from several tables.
type Builder struct {
	seen  map[string]struct{}
	order []string
	rows  int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// Add parses one tab-delimited table and merges its qualifying words.
// Row 0 is a header and is skipped; blank lines are ignored.
func (b *Builder) Add(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse row %d: %w", line, err)
		}
		if line == 0 || len(rec) <= wordColumn || rec[wordColumn] == "" {
			continue
		}
		b.rows++
		w := arabic.Normalize(rec[wordColumn])
		if !arabic.Valid(w) {
			continue
		}
		if _, ok := b.seen[w]; ok {
			continue
		}
		b.seen[w] = struct{}{}
		b.order = append(b.order, w)
	}
}

// AddFile opens path and calls Add.
func (b *Builder) AddFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := b.Add(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Rows returns how many data rows were examined.
func (b *Builder) Rows() int { return b.rows }

// Words returns the collected words in first-seen order.
func (b *Builder) Words() []string {
	return append([]string(nil), b.order...)
}

// BuildFiles runs a Builder over every path, failing on the first error.
func BuildFiles(paths ...string) ([]string, error) {
	b := NewBuilder()
	for _, p := range paths {
		if err := b.AddFile(p); err != nil {
			return nil, err
		}
	}
	return b.Words(), nil
}

// WriteJSON writes list as a two-space indented JSON array.
func WriteJSON(w io.Writer, list []string) error {
	if list == nil {
		list = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

// SortWords orders list by code point so builds are reproducible.
func SortWords(list []string) { sort.Strings(list) }
