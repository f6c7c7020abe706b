package models

// LeagueTeamStats is a team plus its running group-stage counters. The
// generation core creates and ranks these; the counters themselves are
// updated by result recording after matches are played.
type LeagueTeamStats struct {
	Team           Team `json:"team"`
	Played         int  `json:"played"`
	Wins           int  `json:"wins"`
	Draws          int  `json:"draws"`
	Losses         int  `json:"losses"`
	GoalsFor       int  `json:"goals_for"`
	GoalsAgainst   int  `json:"goals_against"`
	GoalDifference int  `json:"goal_difference"`
	Points         int  `json:"points"`
}

type LeagueMatch struct {
	ID         string `json:"id"`
	Team1ID    string `json:"team1_id"`
	Team2ID    string `json:"team2_id"`
	Team1Score *int   `json:"team1_score,omitempty"`
	Team2Score *int   `json:"team2_score,omitempty"`

	// OverrideWinnerID resolves drawn fixtures where the format requires a
	// winner; it is stored as given and never interpreted here.
	OverrideWinnerID *string `json:"override_winner_id,omitempty"`

	Played    bool    `json:"played"`
	Court     *int    `json:"court,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
}

// LeagueGroup owns its team-stats sequence. Teams keeps group-assignment
// insertion order, which is a separate invariant from rank order: ranking
// produces a new view and never reorders this slice.
type LeagueGroup struct {
	Name    string             `json:"name"`
	Teams   []*LeagueTeamStats `json:"teams"`
	Matches []*LeagueMatch     `json:"matches"`
}

type LeagueTable struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Groups   []*LeagueGroup   `json:"groups"`
	Settings ScheduleSettings `json:"settings"`

	// FinalRound is set when the final stage was composed together with the
	// table itself.
	FinalRound *FinalRound `json:"final_round,omitempty"`
}

// Match returns the league match with the given ID and its group, or nils.
func (t *LeagueTable) Match(id string) (*LeagueGroup, *LeagueMatch) {
	for _, g := range t.Groups {
		for _, m := range g.Matches {
			if m.ID == id {
				return g, m
			}
		}
	}
	return nil, nil
}

// Stats returns the group's stats entry for a team ID, or nil.
func (g *LeagueGroup) Stats(teamID string) *LeagueTeamStats {
	for _, s := range g.Teams {
		if s.Team.ID == teamID {
			return s
		}
	}
	return nil
}
