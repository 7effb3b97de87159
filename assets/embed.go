// Package assets embeds the default dictionary so the server can start
// without a freshly built word list.
package assets

import (
	_ "embed"
)

// DictionaryName is the file name the builder writes and the server serves.
const DictionaryName = "arabic-words.json"

//go:embed arabic-words.json
var defaultDictionary []byte

// DefaultDictionary returns a copy of the embedded JSON word list.
func DefaultDictionary() []byte {
	out := make([]byte, len(defaultDictionary))
	copy(out, defaultDictionary)
	return out
}
