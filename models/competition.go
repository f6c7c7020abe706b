package models

import "time"

type FinalKind string

const (
	FinalKindLeague     FinalKind = "league"
	FinalKindTournament FinalKind = "tournament"
)

// FinalRound is the secondary stage built from group-stage survivors.
// Exactly one of League or Bracket is set, per Kind.
type FinalRound struct {
	Kind    FinalKind          `json:"kind"`
	Teams   []Team             `json:"teams"`
	League  *LeagueTable       `json:"league,omitempty"`
	Bracket *TournamentBracket `json:"bracket,omitempty"`
}

type CompetitionKind string

const (
	CompetitionBracket CompetitionKind = "bracket"
	CompetitionLeague  CompetitionKind = "league"
)

// CompetitionResult is the tagged variant resolved once at the generation
// boundary: exactly one of Bracket or League is set, per Kind. Consumers
// switch on Kind instead of probing the payload shape.
type CompetitionResult struct {
	Kind    CompetitionKind    `json:"kind"`
	Bracket *TournamentBracket `json:"bracket,omitempty"`
	League  *LeagueCompetition `json:"league,omitempty"`
}

// LeagueCompetition wraps a preliminary league table with its advancement
// rule and the final stage, which may be generated at creation time or later
// once group results are in.
type LeagueCompetition struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Preliminary     *LeagueTable `json:"preliminary"`
	AdvanceCount    int          `json:"advance_count"`
	FinalKind       FinalKind    `json:"final_kind"`
	Final           *FinalRound  `json:"final,omitempty"`
	FinalsGenerated bool         `json:"finals_generated"`
}

// Competition is the persisted unit: a named CompetitionResult.
type Competition struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Result    CompetitionResult `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
