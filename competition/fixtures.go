package competition

import (
	"fmt"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

// BuildFixtures produces one unplayed match for every unordered pair of
// teams in the group: k teams yield k*(k-1)/2 fixtures, all i<j over the
// input order, with empty schedule fields. Fewer than two teams yield an
// empty list.
//
// The pairing order is deliberate, not arbitrary: it is the priority order
// the court scheduler works through, so a group's earlier teams get the
// earlier slots when courts are contended.
func BuildFixtures(stats []*models.LeagueTeamStats) []*models.LeagueMatch {
	k := len(stats)
	matches := make([]*models.LeagueMatch, 0, k*(k-1)/2)
	seq := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			seq++
			matches = append(matches, &models.LeagueMatch{
				ID:      fmt.Sprintf("M%d", seq),
				Team1ID: stats[i].Team.ID,
				Team2ID: stats[j].Team.ID,
			})
		}
	}
	return matches
}
