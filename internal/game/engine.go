// internal/game/engine.go
//
// Core game engine for a single Arabic Wordle session.
// Responsibilities:
//   - Apply input events through a single transition function.
//   - Validate guesses (length, dictionary membership) in that order.
//   - Score guesses per position (correct / present / absent).
//   - Track state transitions: loading → playing → won/lost, loading → failed.
//
// Notes:
//   - Transition never mutates its argument; Guesses is copied on append.
//   - Events that make no sense in the current status return the state as is.
//   - Shake and message are cosmetic: Timers lists the clears to schedule,
//     and stale clears (older generation or sequence) are ignored.

package game

import (
	"strings"

	"github.com/robalobadob/arabic-wordle/internal/arabic"
)

// Transition applies e to s and returns the resulting state.
func Transition(s State, e Event) State {
	switch ev := e.(type) {
	case Loaded:
		return onLoaded(s, ev)
	case LoadFailed:
		return onLoadFailed(s, ev)
	case Letter:
		return onLetter(s, ev)
	case Backspace:
		return onBackspace(s)
	case Submit:
		return onSubmit(s)
	case Reset:
		return onReset(s, ev)
	case ClearShake:
		if ev.Generation == s.Generation && ev.Seq == s.ShakeSeq {
			s.Shake = false
		}
		return s
	case ClearMessage:
		if ev.Generation == s.Generation && ev.Seq == s.MessageSeq {
			s.Message = ""
		}
		return s
	}
	return s
}

func onLoaded(s State, ev Loaded) State {
	if s.Status != StatusLoading {
		return s
	}
	if ev.Dict == nil {
		return onLoadFailed(s, LoadFailed{})
	}
	target := ev.Target
	if target == "" {
		target = ev.Dict.Random()
	}
	s.dict = ev.Dict
	s.Target = target
	s.Status = StatusPlaying
	return s
}

func onLoadFailed(s State, ev LoadFailed) State {
	if s.Status != StatusLoading {
		return s
	}
	s.Status = StatusFailed
	if ev.Err != nil {
		s.Err = ev.Err.Error()
	}
	return withMessage(s, MsgLoadFailed)
}

func onLetter(s State, ev Letter) State {
	if s.Status != StatusPlaying || arabic.Len(s.CurrentGuess) >= WordLength {
		return s
	}
	r, ok := arabic.NormalizeLetter(ev.Rune)
	if !ok {
		return s
	}
	s.CurrentGuess += string(r)
	s.Message = ""
	return s
}

func onBackspace(s State) State {
	if s.Status != StatusPlaying {
		return s
	}
	if rs := []rune(s.CurrentGuess); len(rs) > 0 {
		s.CurrentGuess = string(rs[:len(rs)-1])
	}
	s.Message = ""
	return s
}

func onSubmit(s State) State {
	if s.Status != StatusPlaying {
		return s
	}
	guess := s.CurrentGuess
	if arabic.Len(guess) != WordLength {
		return withShake(withMessage(s, MsgWrongLength))
	}
	if s.dict == nil || !s.dict.Contains(guess) {
		return withShake(withMessage(s, MsgNotInDict))
	}

	guesses := make([]string, len(s.Guesses), len(s.Guesses)+1)
	copy(guesses, s.Guesses)
	s.Guesses = append(guesses, guess)
	s.CurrentGuess = ""

	switch {
	case guess == s.Target:
		s.Status = StatusWon
		s = withMessage(s, MsgWon)
	case len(s.Guesses) >= MaxAttempts:
		s.Status = StatusLost
		s = withMessage(s, LostMessage(s.Target))
	}
	return s
}

func onReset(s State, ev Reset) State {
	if !s.Status.Finished() || s.dict == nil {
		return s
	}
	target := ev.Target
	if target == "" {
		target = s.dict.Random()
	}
	return State{
		Target:     target,
		Status:     StatusPlaying,
		Generation: s.Generation + 1,
		dict:       s.dict,
	}
}

func withMessage(s State, msg string) State {
	s.Message = msg
	s.MessageSeq++
	return s
}

func withShake(s State) State {
	s.Shake = true
	s.ShakeSeq++
	return s
}

// LostMessage is the banner shown when the last attempt fails.
func LostMessage(target string) string { return MsgLostPrefix + target }

// Timers returns the cosmetic clears that next needs after moving from prev.
func Timers(prev, next State) []Timer {
	var out []Timer
	if next.Shake && (next.ShakeSeq != prev.ShakeSeq || next.Generation != prev.Generation) {
		out = append(out, Timer{
			Delay: ShakeDuration,
			Event: ClearShake{Generation: next.Generation, Seq: next.ShakeSeq},
		})
	}
	if next.Message != "" && (next.MessageSeq != prev.MessageSeq || next.Generation != prev.Generation) {
		out = append(out, Timer{
			Delay: MessageDuration,
			Event: ClearMessage{Generation: next.Generation, Seq: next.MessageSeq},
		})
	}
	return out
}

// Score evaluates guess against target position by position.
//
//   - exact positional match → MarkCorrect
//   - letter occurs anywhere in target → MarkPresent
//   - otherwise → MarkAbsent
//
// Repeated letters are not rationed: every copy of a letter that occurs in
// the target is at least present.
func Score(target, guess string) []Mark {
	t := []rune(target)
	g := []rune(guess)
	res := make([]Mark, len(g))
	for i, r := range g {
		switch {
		case i < len(t) && t[i] == r:
			res[i] = MarkCorrect
		case strings.ContainsRune(target, r):
			res[i] = MarkPresent
		default:
			res[i] = MarkAbsent
		}
	}
	return res
}

// KeyStatuses aggregates the marks of every tile of every guess into one
// mark per key: the best mark the letter received anywhere (correct beats
// present beats absent). Keys never typed are not in the map.
func KeyStatuses(target string, guesses []string) map[rune]Mark {
	out := make(map[rune]Mark)
	for _, g := range guesses {
		marks := Score(target, g)
		for i, r := range []rune(g) {
			if marks[i].rank() > out[r].rank() {
				out[r] = marks[i]
			}
		}
	}
	return out
}
