package game

// Alphabet is the letter keyboard offered to players.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Key is one keyboard letter and whether it has been played.
type Key struct {
	Letter  string `json:"letter"`
	Guessed bool   `json:"guessed"`
}

// Snapshot is the read model rendered after every call.
// Word and Definition are only filled once the round has ended.
type Snapshot struct {
	RoundID    string   `json:"roundId,omitempty"`
	Status     Status   `json:"status"`
	Masked     string   `json:"masked"`
	Length     int      `json:"length"`
	Guessed    []string `json:"guessed"`
	MissCount  int      `json:"missCount"`
	Remaining  int      `json:"remaining"`
	MaxMisses  int      `json:"maxMisses"`
	Keyboard   []Key    `json:"keyboard"`
	Word       string   `json:"word,omitempty"`
	Definition string   `json:"definition,omitempty"`
	Player     *Player  `json:"player,omitempty"`
}

// Snapshot builds the current read model.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		RoundID:   s.ID,
		Status:    s.status,
		Masked:    s.Masked(),
		Length:    len(s.word),
		Guessed:   s.Guessed(),
		MissCount: s.misses,
		Remaining: s.RemainingAttempts(),
		MaxMisses: MaxMisses,
		Keyboard:  make([]Key, 0, len(Alphabet)),
		Player:    s.player,
	}
	for _, r := range Alphabet {
		snap.Keyboard = append(snap.Keyboard, Key{Letter: string(r), Guessed: s.HasGuessed(r)})
	}
	if s.status.Terminal() {
		snap.Word = string(s.word)
		snap.Definition = s.definition
	}
	return snap
}
