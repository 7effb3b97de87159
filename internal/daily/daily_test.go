package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/arabic-wordle/internal/store"
)

type list []string

func (l list) Len() int { return len(l) }
func (l list) At(i int) string { return l[i] }

func TestWordIndexStablePerDate(t *testing.T) {
	morning := time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)

	a := WordIndex(morning, "salt", 48)
	assert.Equal(t, a, WordIndex(evening, "salt", 48))
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 48)
	assert.Zero(t, WordIndex(morning, "salt", 0))
}

func TestWordIndexVaries(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[WordIndex(day.AddDate(0, 0, i), "salt", 1000)] = true
	}
	assert.Greater(t, len(seen), 20)
}

func TestTarget(t *testing.T) {
	words := list{"كتاب", "بحار", "جبال"}
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	idx, w := Target(words, day, "salt")
	assert.Equal(t, words[idx], w)

	_, w = Target(list{}, day, "salt")
	assert.Empty(t, w)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := store.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	rs := store.NewResults(db)
	for _, r := range []store.Result{
		{GameID: "a", PlayerID: "slow", Mode: store.ModeDaily, Date: "2026-03-01", Target: "كتاب", Status: "won", Guesses: 3, ElapsedMs: 9000},
		{GameID: "b", PlayerID: "fast", Mode: store.ModeDaily, Date: "2026-03-01", Target: "كتاب", Status: "won", Guesses: 3, ElapsedMs: 1000},
		{GameID: "c", PlayerID: "lucky", Mode: store.ModeDaily, Date: "2026-03-01", Target: "كتاب", Status: "won", Guesses: 1, ElapsedMs: 20000},
		{GameID: "d", PlayerID: "loser", Mode: store.ModeDaily, Date: "2026-03-01", Target: "كتاب", Status: "lost", Guesses: 6, ElapsedMs: 100},
		{GameID: "e", PlayerID: "free", Mode: store.ModeFree, Date: "2026-03-01", Target: "بحار", Status: "won", Guesses: 1, ElapsedMs: 1},
	} {
		_, err := rs.Insert(ctx, r)
		require.NoError(t, err)
	}

	ds := NewStore(db)
	played, err := ds.AlreadyPlayed(ctx, "loser", "2026-03-01")
	require.NoError(t, err)
	assert.True(t, played)

	played, err = ds.AlreadyPlayed(ctx, "free", "2026-03-01")
	require.NoError(t, err)
	assert.False(t, played, "free games do not count")

	lb, err := ds.Leaderboard(ctx, "2026-03-01", 0)
	require.NoError(t, err)
	require.Len(t, lb, 3)
	assert.Equal(t, []string{"lucky", "fast", "slow"}, []string{lb[0].PlayerID, lb[1].PlayerID, lb[2].PlayerID})
}
