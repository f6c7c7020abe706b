package models

// BracketTeam is a team occupying a bracket slot. IsBye marks the synthetic
// placeholder that fills an empty slot of a non-power-of-two field; Seed is
// set for teams that entered the bracket through a bye.
type BracketTeam struct {
	Team
	Seed  *int `json:"seed,omitempty"`
	IsBye bool `json:"is_bye,omitempty"`
}

// BracketMatch is one node of the single-elimination tree. Round and
// OrderInRound are 0-indexed; the human-readable ID ("R1M1") is 1-based.
type BracketMatch struct {
	ID           string `json:"id"`
	Round        int    `json:"round"`
	OrderInRound int    `json:"order_in_round"`

	Team1 *BracketTeam `json:"team1,omitempty"`
	Team2 *BracketTeam `json:"team2,omitempty"`

	// Placeholder1/2 describe an unfilled slot ("Winner of R1M3").
	Placeholder1 string `json:"placeholder1,omitempty"`
	Placeholder2 string `json:"placeholder2,omitempty"`

	Team1Score *int `json:"team1_score,omitempty"`
	Team2Score *int `json:"team2_score,omitempty"`

	WinnerID *string `json:"winner_id,omitempty"`
	// OverrideWinnerID resolves score ties (penalty shootouts and the like).
	// The generation core stores it untouched.
	OverrideWinnerID *string `json:"override_winner_id,omitempty"`

	// NextMatchID/NextMatchSlot identify where the winner advances to.
	// Absent for the final. Slot is 1 or 2.
	NextMatchID   *string `json:"next_match_id,omitempty"`
	NextMatchSlot int     `json:"next_match_slot,omitempty"`

	IsDecided  bool `json:"is_decided"`
	IsPlayable bool `json:"is_playable"`

	Court     *int    `json:"court,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
}

// BracketRound holds one tree level; match counts halve round by round until
// a single final remains.
type BracketRound struct {
	Name    string          `json:"name"`
	Matches []*BracketMatch `json:"matches"`
}

type TournamentBracket struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Teams  []Team         `json:"teams"`
	Rounds []BracketRound `json:"rounds"`
}

// Match returns the bracket match with the given ID, or nil.
func (b *TournamentBracket) Match(id string) *BracketMatch {
	for _, round := range b.Rounds {
		for _, m := range round.Matches {
			if m.ID == id {
				return m
			}
		}
	}
	return nil
}
