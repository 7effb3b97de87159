// internal/arabic/normalize.go
//
// Normalization and validation rules for Arabic dictionary entries.
// Responsibilities:
//   - Strip tashkeel (harakat, shadda, sukun, dagger alef) and tatweel.
//   - Fold alef variants (إ أ آ ا) to bare alef and alef maqsura to yaa.
//   - Decide whether a normalized token is a valid 4-letter game word.
//
// Notes:
//   - Lengths are counted in runes; every letter in the Arabic block is a
//     single code point.
//   - Hamza-on-alef forms are folded, but the isolated hamza (ء) is kept by
//     Normalize and rejected by Valid.

package arabic

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// WordLength is the number of letters in every game word.
const WordLength = 4

const (
	Tatweel = 'ـ' // U+0640
	Hamza   = 'ء' // U+0621
	Alef    = 'ا' // U+0627
	Yaa     = 'ي' // U+064A

	blockLo = '؀'
	blockHi = 'ۿ'
)

// tashkeel covers fathatan..sukun plus the superscript (dagger) alef.
var tashkeel = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x064B, Hi: 0x0652, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
	},
}

// stripMarks removes tashkeel and tatweel in a single pass.
var stripMarks = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == Tatweel || unicode.Is(tashkeel, r)
}))

// foldLetters maps the letter variants that the game treats as equal.
var foldLetters = runes.Map(func(r rune) rune {
	switch r {
	case 'إ', 'أ', 'آ':
		return Alef
	case 'ى':
		return Yaa
	}
	return r
})

// normalizer builds a fresh chain per call; chained transformers keep
// internal buffers and must not be shared between goroutines.
func normalizer() transform.Transformer {
	return transform.Chain(stripMarks, foldLetters)
}

// Normalize applies the dictionary normalization rules to s.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	out, _, err := transform.String(normalizer(), s)
	if err != nil {
		// transform only fails on invalid UTF-8 state; fall back to the input.
		out = s
	}
	return strings.TrimSpace(out)
}

// NormalizeLetter normalizes a single typed rune.
// ok is false if the rune disappears (a mark) or is not an Arabic-block letter.
func NormalizeLetter(r rune) (rune, bool) {
	n := Normalize(string(r))
	if utf8.RuneCountInString(n) != 1 {
		return 0, false
	}
	out, _ := utf8.DecodeRuneInString(n)
	if !InBlock(out) || !unicode.IsLetter(out) {
		return 0, false
	}
	return out, true
}

// InBlock reports whether r lies in the Arabic Unicode block U+0600..U+06FF.
func InBlock(r rune) bool {
	return r >= blockLo && r <= blockHi
}

// Valid reports whether an already-normalized token is a game word:
// exactly WordLength runes, all in the Arabic block, no tatweel, no hamza.
func Valid(w string) bool {
	if utf8.RuneCountInString(w) != WordLength {
		return false
	}
	for _, r := range w {
		if !InBlock(r) || r == Tatweel || r == Hamza {
			return false
		}
	}
	return true
}

// Len returns the length of w in letters.
func Len(w string) int { return utf8.RuneCountInString(w) }
