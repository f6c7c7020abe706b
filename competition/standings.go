package competition

import (
	"sort"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

// SortStandings returns a new ranking view of the group's stats, ordered by
// points, then goal difference, then goals for, all descending. There is no
// further tie-break: the sort is stable, so teams level on all three retain
// their relative insertion order. The input slice is not reordered.
func SortStandings(stats []*models.LeagueTeamStats) []*models.LeagueTeamStats {
	ranked := make([]*models.LeagueTeamStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	return ranked
}

// SelectAdvancing returns the top advanceCount teams of every group, in
// group order, as a flat sequence. The count is clamped to each group's
// size.
func SelectAdvancing(groups []*models.LeagueGroup, advanceCount int) []models.Team {
	if advanceCount < 1 {
		return nil
	}
	var advancing []models.Team
	for _, g := range groups {
		ranked := SortStandings(g.Teams)
		limit := min(advanceCount, len(ranked))
		for _, s := range ranked[:limit] {
			advancing = append(advancing, s.Team)
		}
	}
	return advancing
}
