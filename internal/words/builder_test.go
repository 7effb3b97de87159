package words

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/arabic-wordle/internal/arabic"
)

const freqTable = "rank\tword\tcount\n" +
	"1\tمكتبة\t500\n" + // five letters
	"2\tدرسَ\t300\n" + // three letters once the fatha is gone
	"3\tأرضـي\t10\n" + // tatweel removed, hamza alef folded
	"4\tسماء\t9\n" + // isolated hamza
	"\n" +
	"5\tكتاب\t8\n" +
	"6\n" + // ragged row
	"7\tكِتَاب\t7\n" // duplicate after normalization

const verbTable = "id\tverb\n" +
	"1\tكتاب\n" +
	"2\tإسلام\n" + // five letters
	"3\tمشىى\n" // alef maqsura folds to yaa

func TestBuilderAdd(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(strings.NewReader(freqTable)))

	assert.Equal(t, []string{"ارضي", "كتاب"}, b.Words())
	assert.Equal(t, 6, b.Rows())
}

func TestBuilderUnionOfTables(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(strings.NewReader(freqTable)))
	require.NoError(t, b.Add(strings.NewReader(verbTable)))

	got := b.Words()
	assert.ElementsMatch(t, []string{"ارضي", "كتاب", "مشيي"}, got)

	seen := map[string]bool{}
	for _, w := range got {
		assert.False(t, seen[w], "duplicate %q", w)
		seen[w] = true
		assert.True(t, arabic.Valid(w))
	}
}

func TestBuilderHeaderOnly(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(strings.NewReader("rank\tword\n")))
	assert.Empty(t, b.Words())
}

func TestBuildFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "wordfreq.csv")
	v := filepath.Join(dir, "freq_verbs.csv")
	require.NoError(t, os.WriteFile(a, []byte(freqTable), 0o644))
	require.NoError(t, os.WriteFile(v, []byte(verbTable), 0o644))

	list, err := BuildFiles(a, v)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = BuildFiles(a, filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	list := []string{"كتاب", "ارضي"}
	SortWords(list)
	require.NoError(t, WriteJSON(&buf, list))

	assert.Contains(t, buf.String(), "\n  \"")
	var back []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, []string{"ارضي", "كتاب"}, back)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
