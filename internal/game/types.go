// internal/game/types.go
//
// Core type definitions for the game state machine.
// Defines:
//   - Status: lifecycle of a session (loading → playing → won/lost, or failed).
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - State: everything a session needs to render and accept input.
//   - Event: the inputs Transition understands.

package game

import (
	"time"

	"github.com/robalobadob/arabic-wordle/internal/arabic"
)

const (
	WordLength  = arabic.WordLength
	MaxAttempts = 6

	ShakeDuration   = 500 * time.Millisecond
	MessageDuration = 3000 * time.Millisecond
)

// User-facing messages.
const (
	MsgWrongLength = "الكلمة يجب أن تكون من 4 أحرف"
	MsgNotInDict   = "الكلمة غير موجودة في القاموس"
	MsgWon         = "أحسنت! لقد فزت"
	MsgLostPrefix  = "للأسف خسرت. الكلمة كانت: "
	MsgLoadFailed  = "تعذر تحميل القاموس"
)

// Status is the coarse lifecycle state of a session.
type Status string

const (
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	StatusFailed  Status = "failed" // dictionary could not be loaded
)

// Finished reports whether the game has ended with a result.
func (s Status) Finished() bool { return s == StatusWon || s == StatusLost }

// Mark represents the evaluation result for a single letter in a guess.
//   - "correct": letter is in the target at this position.
//   - "present": letter occurs somewhere else in the target.
//   - "absent":  letter does not occur in the target.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

func (m Mark) rank() int {
	switch m {
	case MarkCorrect:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	}
	return 0
}

// Dictionary is what the state machine needs from a word list.
type Dictionary interface {
	Contains(w string) bool
	Random() string
}

// State is a complete, self-contained game session.
// Values are treated as immutable: Transition returns a new State.
type State struct {
	CurrentGuess string
	Guesses      []string
	Target       string
	Status       Status
	Message      string
	Shake        bool
	Err          string

	// Generation is bumped on every reset; cosmetic clear events carry it so
	// a timer from an earlier game cannot touch the current one.
	Generation int
	ShakeSeq   int
	MessageSeq int

	dict Dictionary
}

// NewState returns the initial loading state.
func NewState() State { return State{Status: StatusLoading} }

// Dictionary returns the word list retained across resets.
func (s State) Dictionary() Dictionary { return s.dict }

// AttemptsLeft is the number of guesses still available.
func (s State) AttemptsLeft() int { return MaxAttempts - len(s.Guesses) }

// Event is an input to Transition.
type Event interface{ isEvent() }

// Loaded delivers the dictionary. An empty Target is drawn from Dict.
type Loaded struct {
	Dict   Dictionary
	Target string
}

// LoadFailed reports that the dictionary could not be obtained.
type LoadFailed struct{ Err error }

// Letter is a typed character.
type Letter struct{ Rune rune }

// Backspace removes the last typed letter.
type Backspace struct{}

// Submit checks the current guess.
type Submit struct{}

// Reset starts a fresh game with the same dictionary. An empty Target is
// drawn from the retained dictionary.
type Reset struct{ Target string }

// ClearShake ends the shake signal raised with the given sequence number.
type ClearShake struct{ Generation, Seq int }

// ClearMessage hides the banner raised with the given sequence number.
type ClearMessage struct{ Generation, Seq int }

func (Loaded) isEvent()       {}
func (LoadFailed) isEvent()   {}
func (Letter) isEvent()       {}
func (Backspace) isEvent()    {}
func (Submit) isEvent()       {}
func (Reset) isEvent()        {}
func (ClearShake) isEvent()   {}
func (ClearMessage) isEvent() {}

// Timer is a cosmetic event to deliver after Delay.
type Timer struct {
	Delay time.Duration
	Event Event
}
