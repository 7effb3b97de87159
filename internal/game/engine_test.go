package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDict is a fixed word list whose Random returns words in turn.
type fakeDict struct {
	words []string
	next  int
}

func (d *fakeDict) Contains(w string) bool {
	for _, x := range d.words {
		if x == w {
			return true
		}
	}
	return false
}

func (d *fakeDict) Random() string {
	w := d.words[d.next%len(d.words)]
	d.next++
	return w
}

func newDict() *fakeDict {
	return &fakeDict{words: []string{"كتاب", "بحار", "جبال", "رجال", "كلام", "سلام", "طعام", "شراب"}}
}

func playing(t *testing.T, target string) State {
	t.Helper()
	s := Transition(NewState(), Loaded{Dict: newDict(), Target: target})
	require.Equal(t, StatusPlaying, s.Status)
	return s
}

func typeAndSubmit(s State, w string) State {
	for _, e := range TypeWord(w) {
		s = Transition(s, e)
	}
	return Transition(s, Submit{})
}

func TestLoaded(t *testing.T) {
	s := Transition(NewState(), Loaded{Dict: newDict()})
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, "كتاب", s.Target, "empty target is drawn from the dictionary")
	assert.NotNil(t, s.Dictionary())

	again := Transition(s, Loaded{Dict: newDict(), Target: "بحار"})
	assert.Equal(t, "كتاب", again.Target, "loaded is only accepted while loading")
}

func TestLoadFailed(t *testing.T) {
	s := Transition(NewState(), LoadFailed{Err: errors.New("connection refused")})
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "connection refused", s.Err)
	assert.Equal(t, MsgLoadFailed, s.Message)

	s = Transition(s, Letter{Rune: 'ك'})
	assert.Empty(t, s.CurrentGuess, "no input in failed state")

	s = Transition(NewState(), Loaded{})
	assert.Equal(t, StatusFailed, s.Status, "nil dictionary fails closed")
}

func TestLetterAndBackspace(t *testing.T) {
	s := playing(t, "كتاب")

	for _, r := range "أرضيك" {
		s = Transition(s, Letter{Rune: r})
	}
	assert.Equal(t, "ارضي", s.CurrentGuess, "folded and capped at four letters")

	s = Transition(s, Letter{Rune: 'x'})
	assert.Equal(t, "ارضي", s.CurrentGuess)

	s = Transition(s, Backspace{})
	assert.Equal(t, "ارض", s.CurrentGuess)

	s = Transition(s, Letter{Rune: 'ى'})
	assert.Equal(t, "ارضي", s.CurrentGuess)

	empty := Transition(playing(t, "كتاب"), Backspace{})
	assert.Empty(t, empty.CurrentGuess)
}

func TestSubmitWrongLength(t *testing.T) {
	s := playing(t, "كتاب")
	s = Transition(s, Letter{Rune: 'ك'})
	before := s

	s = Transition(s, Submit{})
	assert.Equal(t, MsgWrongLength, s.Message)
	assert.True(t, s.Shake)
	assert.Equal(t, before.CurrentGuess, s.CurrentGuess)
	assert.Empty(t, s.Guesses)
	assert.Equal(t, StatusPlaying, s.Status)
}

func TestSubmitNotInDictionary(t *testing.T) {
	s := typeAndSubmit(playing(t, "كتاب"), "قطار")
	assert.Equal(t, MsgNotInDict, s.Message)
	assert.True(t, s.Shake)
	assert.Equal(t, "قطار", s.CurrentGuess)
	assert.Empty(t, s.Guesses)
}

func TestSubmitValidGuess(t *testing.T) {
	prev := playing(t, "كتاب")
	s := typeAndSubmit(prev, "بحار")
	assert.Equal(t, []string{"بحار"}, s.Guesses)
	assert.Empty(t, s.CurrentGuess)
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, MaxAttempts-1, s.AttemptsLeft())
	assert.Empty(t, prev.Guesses, "transition does not mutate its input")
}

func TestWin(t *testing.T) {
	s := typeAndSubmit(playing(t, "كتاب"), "بحار")
	s = typeAndSubmit(s, "كتاب")
	assert.Equal(t, StatusWon, s.Status)
	assert.Equal(t, MsgWon, s.Message)

	after := typeAndSubmit(s, "جبال")
	assert.Equal(t, s.Guesses, after.Guesses, "no guesses after a win")
	assert.Equal(t, StatusWon, after.Status)
}

func TestLoseAfterSixGuesses(t *testing.T) {
	s := playing(t, "كتاب")
	for _, w := range []string{"بحار", "جبال", "رجال", "كلام", "سلام"} {
		s = typeAndSubmit(s, w)
		require.Equal(t, StatusPlaying, s.Status)
	}
	s = typeAndSubmit(s, "طعام")
	assert.Equal(t, StatusLost, s.Status)
	assert.Len(t, s.Guesses, MaxAttempts)
	assert.Equal(t, "للأسف خسرت. الكلمة كانت: كتاب", s.Message)
	assert.Contains(t, s.Message, s.Target)

	after := typeAndSubmit(s, "شراب")
	assert.Len(t, after.Guesses, MaxAttempts)
}

func TestWinOnLastAttempt(t *testing.T) {
	s := playing(t, "كتاب")
	for _, w := range []string{"بحار", "جبال", "رجال", "كلام", "سلام"} {
		s = typeAndSubmit(s, w)
	}
	s = typeAndSubmit(s, "كتاب")
	assert.Equal(t, StatusWon, s.Status)
}

func TestReset(t *testing.T) {
	s := playing(t, "كتاب")
	assert.Equal(t, s, Transition(s, Reset{Target: "بحار"}), "reset is only offered once the game ended")

	for _, w := range []string{"بحار", "جبال", "رجال", "كلام", "سلام", "طعام"} {
		s = typeAndSubmit(s, w)
	}
	require.Equal(t, StatusLost, s.Status)
	s = Transition(s, Letter{Rune: 'ك'})

	r := Transition(s, Reset{Target: "شراب"})
	assert.Equal(t, StatusPlaying, r.Status)
	assert.Empty(t, r.Guesses)
	assert.Empty(t, r.CurrentGuess)
	assert.Empty(t, r.Message)
	assert.Equal(t, "شراب", r.Target)
	assert.Equal(t, s.Generation+1, r.Generation)
	assert.Same(t, s.Dictionary(), r.Dictionary())

	drawn := Transition(s, Reset{})
	assert.True(t, drawn.Dictionary().Contains(drawn.Target), "new target comes from the retained dictionary")
}

func TestCosmeticClears(t *testing.T) {
	s := typeAndSubmit(playing(t, "كتاب"), "قطار")
	require.True(t, s.Shake)

	stale := Transition(s, ClearShake{Generation: s.Generation, Seq: s.ShakeSeq - 1})
	assert.True(t, stale.Shake)

	cleared := Transition(s, ClearShake{Generation: s.Generation, Seq: s.ShakeSeq})
	assert.False(t, cleared.Shake)
	assert.Equal(t, s.Message, cleared.Message)

	cleared = Transition(cleared, ClearMessage{Generation: s.Generation, Seq: s.MessageSeq})
	assert.Empty(t, cleared.Message)
	assert.Equal(t, "قطار", cleared.CurrentGuess, "clears never touch game state")
}

func TestStaleClearAfterReset(t *testing.T) {
	s := playing(t, "كتاب")
	s = typeAndSubmit(s, "كتاب")
	require.Equal(t, StatusWon, s.Status)
	old := ClearMessage{Generation: s.Generation, Seq: s.MessageSeq}

	r := Transition(s, Reset{Target: "بحار"})
	r = typeAndSubmit(r, "قطار")
	require.Equal(t, MsgNotInDict, r.Message)

	r2 := Transition(r, old)
	assert.Equal(t, MsgNotInDict, r2.Message, "timer from the previous game is ignored")
}

func TestTimers(t *testing.T) {
	s := playing(t, "كتاب")
	assert.Empty(t, Timers(s, s))

	bad := typeAndSubmit(s, "قطا")
	timers := Timers(s, bad)
	require.Len(t, timers, 2)
	assert.Equal(t, ShakeDuration, timers[0].Delay)
	assert.Equal(t, ClearShake{Generation: bad.Generation, Seq: bad.ShakeSeq}, timers[0].Event)
	assert.Equal(t, MessageDuration, timers[1].Delay)
	assert.Equal(t, ClearMessage{Generation: bad.Generation, Seq: bad.MessageSeq}, timers[1].Event)

	typed := Transition(bad, Backspace{})
	assert.Empty(t, Timers(bad, typed))
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		target string
		guess  string
		want   []Mark
	}{
		{"all correct", "كتاب", "كتاب", []Mark{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect}},
		{"all absent", "كتاب", "جميل", []Mark{MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent}},
		{"mixed", "كتاب", "بحار", []Mark{MarkPresent, MarkAbsent, MarkCorrect, MarkAbsent}},
		{"repeated letters are each present", "كتاب", "اااا", []Mark{MarkPresent, MarkPresent, MarkCorrect, MarkPresent}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.target, tt.guess))
		})
	}
}

func TestKeyStatuses(t *testing.T) {
	// target كتاب; guess بحار puts ا in its correct slot, ب out of place.
	// guess باعث: ب out of place again, ا out of place, ع and ث absent.
	ks := KeyStatuses("كتاب", []string{"بحار", "باعث"})
	assert.Equal(t, MarkCorrect, ks['ا'], "best mark wins across guesses")
	assert.Equal(t, MarkPresent, ks['ب'])
	assert.Equal(t, MarkAbsent, ks['ح'])
	assert.Equal(t, MarkAbsent, ks['ع'])
	_, typed := ks['ك']
	assert.False(t, typed)
}

func TestView(t *testing.T) {
	s := typeAndSubmit(playing(t, "كتاب"), "بحار")
	s = Transition(s, Letter{Rune: 'ك'})

	v := s.View()
	assert.Equal(t, StatusPlaying, v.Status)
	assert.Empty(t, v.Target, "target hidden while playing")
	require.Len(t, v.Board, MaxAttempts)
	assert.Equal(t, Tile{Letter: "ا", Mark: MarkCorrect}, v.Board[0][2])
	assert.Equal(t, Tile{Letter: "ك"}, v.Board[1][0])
	assert.Equal(t, Tile{}, v.Board[2][0])
	assert.Equal(t, MarkPresent, v.Keyboard["ب"])

	won := typeAndSubmit(Transition(s, Backspace{}), "كتاب")
	assert.Equal(t, "كتاب", won.View().Target)
}
