package game

// Tile is one cell of the board.
type Tile struct {
	Letter string `json:"letter"`
	Mark   Mark   `json:"mark,omitempty"`
}

// View is the client-facing snapshot of a State.
// The target is only revealed once the game is finished.
type View struct {
	Status       Status          `json:"status"`
	Board        [][]Tile        `json:"board"`
	CurrentGuess string          `json:"currentGuess"`
	Keyboard     map[string]Mark `json:"keyboard"`
	AttemptsLeft int             `json:"attemptsLeft"`
	Message      string          `json:"message,omitempty"`
	Shake        bool            `json:"shake,omitempty"`
	Target       string          `json:"target,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// Board lays out MaxAttempts rows of WordLength tiles: scored tiles for
// submitted guesses, the current guess on the next row, blanks after that.
func (s State) Board() [][]Tile {
	rows := make([][]Tile, MaxAttempts)
	for i := range rows {
		row := make([]Tile, WordLength)
		switch {
		case i < len(s.Guesses):
			g := []rune(s.Guesses[i])
			marks := Score(s.Target, s.Guesses[i])
			for j := range row {
				if j < len(g) {
					row[j] = Tile{Letter: string(g[j]), Mark: marks[j]}
				}
			}
		case i == len(s.Guesses) && s.Status == StatusPlaying:
			cur := []rune(s.CurrentGuess)
			for j := range row {
				if j < len(cur) {
					row[j] = Tile{Letter: string(cur[j])}
				}
			}
		}
		rows[i] = row
	}
	return rows
}

// View renders s for clients.
func (s State) View() View {
	kb := make(map[string]Mark)
	for r, m := range KeyStatuses(s.Target, s.Guesses) {
		kb[string(r)] = m
	}
	v := View{
		Status:       s.Status,
		Board:        s.Board(),
		CurrentGuess: s.CurrentGuess,
		Keyboard:     kb,
		AttemptsLeft: s.AttemptsLeft(),
		Message:      s.Message,
		Shake:        s.Shake,
		Error:        s.Err,
	}
	if s.Status.Finished() {
		v.Target = s.Target
	}
	return v
}
