package competition

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

// LeagueParams configures one league-table generation call.
type LeagueParams struct {
	Name       string
	GroupCount int
	Settings   models.ScheduleSettings

	// AdvanceCount teams per group move on when WantsFinalRound is set.
	AdvanceCount    int
	WantsFinalRound bool
	FinalKind       models.FinalKind
}

// BuildLeagueTable distributes the teams into round-robin groups, generates
// every group's fixtures, and schedules the union of all fixtures in a
// single pass so courts are genuinely shared across groups. Teams are
// assigned to groups by index (team i joins group i mod groupCount), not by
// seeding or rating.
//
// Each group's fixture list is re-sorted by assigned start time afterwards;
// this is for display only and has no effect on the schedule itself.
func BuildLeagueTable(teams []models.Team, params LeagueParams) (*models.LeagueTable, error) {
	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientTeams, n)
	}
	groupCount := params.GroupCount
	if groupCount < 1 || groupCount > n {
		return nil, fmt.Errorf("%w: %d groups for %d teams", ErrInvalidGroupCount, groupCount, n)
	}
	if n < groupCount*2 {
		return nil, fmt.Errorf("%w: %d teams cannot fill %d groups of at least two", ErrInvalidGroupCount, n, groupCount)
	}

	groups := make([]*models.LeagueGroup, groupCount)
	for g := range groups {
		groups[g] = &models.LeagueGroup{Name: "Group " + groupLabel(g)}
	}
	for i, t := range teams {
		g := groups[i%groupCount]
		g.Teams = append(g.Teams, &models.LeagueTeamStats{Team: t})
	}

	// One scheduling pass over the union of every group's fixtures. Group
	// order sets the priority order, so while one group's teams rest the
	// scheduler fills the free courts with the next group's fixtures.
	var all []*models.LeagueMatch
	var pairings []Pairing
	for gi, g := range groups {
		fixtures := BuildFixtures(g.Teams)
		for _, m := range fixtures {
			m.ID = fmt.Sprintf("G%d%s", gi+1, m.ID)
			all = append(all, m)
			pairings = append(pairings, Pairing{Team1ID: m.Team1ID, Team2ID: m.Team2ID})
		}
		g.Matches = fixtures
	}

	assignments, err := AssignCourts(pairings, params.Settings)
	if err != nil {
		return nil, err
	}
	for i, m := range all {
		court := assignments[i].Court
		start := assignments[i].StartTime
		m.Court = &court
		m.StartTime = &start
	}
	for _, g := range groups {
		sortMatchesByStart(g.Matches)
	}

	table := &models.LeagueTable{
		Name:     params.Name,
		Groups:   groups,
		Settings: params.Settings,
	}

	if params.WantsFinalRound {
		advancing := SelectAdvancing(groups, params.AdvanceCount)
		final, err := ComposeFinalRound(advancing, params.FinalKind, params.Settings)
		if err != nil {
			return nil, err
		}
		table.FinalRound = final
	}

	return table, nil
}

func groupLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

// sortMatchesByStart reorders a fixture list by assigned start time, stable
// so the generation order breaks ties.
func sortMatchesByStart(matches []*models.LeagueMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, errA := parseClock(clockOrZero(matches[i].StartTime))
		b, errB := parseClock(clockOrZero(matches[j].StartTime))
		if errA != nil || errB != nil {
			return false
		}
		return a < b
	})
}

func clockOrZero(s *string) string {
	if s == nil {
		return "00:00"
	}
	return *s
}
