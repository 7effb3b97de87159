package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestBuildDict(t *testing.T) {
	dir := t.TempDir()
	freq := filepath.Join(dir, "wordfreq.csv")
	verbs := filepath.Join(dir, "freq_verbs.csv")
	out := filepath.Join(dir, "public", "arabic-words.json")
	require.NoError(t, os.WriteFile(freq, []byte("rank\tword\n1\tكتاب\n2\tمكتبة\n3\tبحار\n"), 0o644))
	require.NoError(t, os.WriteFile(verbs, []byte("id\tverb\n1\tكتب\n2\tكتاب\n"), 0o644))

	require.NoError(t, run(t, "--wordfreq", freq, "--verbs", verbs, "--out", out, "--sort"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got []string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{"بحار", "كتاب"}, got)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBuildDictFailureLeavesOutputAlone(t *testing.T) {
	dir := t.TempDir()
	freq := filepath.Join(dir, "wordfreq.csv")
	out := filepath.Join(dir, "arabic-words.json")
	require.NoError(t, os.WriteFile(freq, []byte("rank\tword\n1\tكتاب\n"), 0o644))
	require.NoError(t, os.WriteFile(out, []byte(`["قديم"]`), 0o644))

	err := run(t, "--wordfreq", freq, "--verbs", filepath.Join(dir, "missing.csv"), "--out", out)
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `["قديم"]`, string(data))
}

func TestBuildDictRejectsArgs(t *testing.T) {
	assert.Error(t, run(t, "extra"))
}
