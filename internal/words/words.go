// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Hold the set of valid 4-letter Arabic words (read-only after construction).
//   - Supply lookups (Contains), uniform random targets (Random) and the
//     ordered list served to clients (Words).
//   - Load the list from a JSON file named by WORDS_FILE or fall back to the
//     embedded default (assets/arabic-words.json).
//
// Constraints:
//   • Entries are normalized and validated with the arabic package; anything
//     that does not pass arabic.Valid is dropped on load.
//   • An empty dictionary is an error: the game cannot pick a target from it.

package words

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/robalobadob/arabic-wordle/assets"
	"github.com/robalobadob/arabic-wordle/internal/arabic"
)

// ErrEmpty is returned when a word list yields no valid entries.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is an immutable set of game words.
type Dictionary struct {
	list []string            // insertion order, used for random picks
	set  map[string]struct{} // membership
}

// New builds a Dictionary from raw entries.
// Entries are normalized; invalid ones and duplicates are dropped.
func New(entries []string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		w := arabic.Normalize(e)
		if !arabic.Valid(w) {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.list = append(d.list, w)
	}
	if len(d.list) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Parse decodes a JSON array of strings into a Dictionary.
func Parse(data []byte) (*Dictionary, error) {
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	return New(entries)
}

// LoadFile reads a JSON word list from disk.
func LoadFile(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Default returns the embedded dictionary.
func Default() (*Dictionary, error) {
	return Parse(assets.DefaultDictionary())
}

// Load uses path when set, otherwise the embedded default.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Contains reports whether w is a dictionary word.
func (d *Dictionary) Contains(w string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[w]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.list)
}

// Words returns a copy of the word list in load order.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.list...)
}

// At returns the i-th word in load order.
func (d *Dictionary) At(i int) string { return d.list[i] }

// Random returns a uniformly chosen word using crypto/rand.
func (d *Dictionary) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(d.list))))
	if err != nil {
		return d.list[0]
	}
	return d.list[n.Int64()]
}
