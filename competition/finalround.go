package competition

import (
	"fmt"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

// ComposeFinalRound builds the secondary stage for the advancing teams by
// reusing the primary generators: a single-group league with advancement
// disabled, or a bracket with no seeds. Scheduling settings are forwarded
// unchanged.
//
// Fewer than two advancing teams cannot form a competition and fail with
// ErrInsufficientTeams. A tournament final whose advancing count is not a
// power of two fails with ErrSeedMismatch from the bracket builder, since no
// seeds exist to absorb the byes.
func ComposeFinalRound(teams []models.Team, kind models.FinalKind, settings models.ScheduleSettings) (*models.FinalRound, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: %d advancing teams cannot form a final round", ErrInsufficientTeams, len(teams))
	}

	final := &models.FinalRound{Kind: kind, Teams: teams}
	switch kind {
	case models.FinalKindLeague:
		table, err := BuildLeagueTable(teams, LeagueParams{
			Name:       "Final Round",
			GroupCount: 1,
			Settings:   settings,
		})
		if err != nil {
			return nil, err
		}
		// Prefix the fixture ids so they cannot collide with the
		// preliminary stage's own "G1M1"-style ids.
		for _, m := range table.Groups[0].Matches {
			m.ID = "F" + m.ID
		}
		final.League = table
	case models.FinalKindTournament:
		bracket, err := BuildBracket("Final Round", teams, nil, &settings)
		if err != nil {
			return nil, err
		}
		final.Bracket = bracket
	default:
		return nil, fmt.Errorf("unsupported final round kind %q", kind)
	}
	return final, nil
}
