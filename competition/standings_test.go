package competition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-exit/team-management-appV5-sub000/competition"
	"github.com/d-exit/team-management-appV5-sub000/models"
)

func statsEntry(id string, points, goalDiff, goalsFor int) *models.LeagueTeamStats {
	return &models.LeagueTeamStats{
		Team:           models.Team{ID: id, Name: "Team " + id},
		Points:         points,
		GoalDifference: goalDiff,
		GoalsFor:       goalsFor,
	}
}

func rankedIDs(ranked []*models.LeagueTeamStats) []string {
	ids := make([]string, len(ranked))
	for i, s := range ranked {
		ids[i] = s.Team.ID
	}
	return ids
}

func TestSortStandingsOrdering(t *testing.T) {
	tests := []struct {
		name  string
		stats []*models.LeagueTeamStats
		want  []string
	}{
		{
			name: "by points",
			stats: []*models.LeagueTeamStats{
				statsEntry("a", 3, 0, 0),
				statsEntry("b", 9, 0, 0),
				statsEntry("c", 6, 0, 0),
			},
			want: []string{"b", "c", "a"},
		},
		{
			name: "goal difference breaks level points",
			stats: []*models.LeagueTeamStats{
				statsEntry("a", 6, -2, 4),
				statsEntry("b", 6, 3, 4),
				statsEntry("c", 6, 1, 4),
			},
			want: []string{"b", "c", "a"},
		},
		{
			name: "goals for breaks level difference",
			stats: []*models.LeagueTeamStats{
				statsEntry("a", 6, 1, 2),
				statsEntry("b", 6, 1, 7),
			},
			want: []string{"b", "a"},
		},
		{
			name: "full tie keeps insertion order",
			stats: []*models.LeagueTeamStats{
				statsEntry("a", 3, 0, 2),
				statsEntry("b", 3, 0, 2),
				statsEntry("c", 3, 0, 2),
			},
			want: []string{"a", "b", "c"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ranked := competition.SortStandings(tc.stats)
			assert.Equal(t, tc.want, rankedIDs(ranked))
		})
	}
}

func TestSortStandingsLeavesInputUntouched(t *testing.T) {
	stats := []*models.LeagueTeamStats{
		statsEntry("a", 0, 0, 0),
		statsEntry("b", 9, 0, 0),
	}
	_ = competition.SortStandings(stats)
	assert.Equal(t, []string{"a", "b"}, rankedIDs(stats))
}

func TestSelectAdvancing(t *testing.T) {
	groups := []*models.LeagueGroup{
		{
			Name: "Group A",
			Teams: []*models.LeagueTeamStats{
				statsEntry("a1", 3, 0, 0),
				statsEntry("a2", 9, 0, 0),
				statsEntry("a3", 6, 0, 0),
			},
		},
		{
			Name: "Group B",
			Teams: []*models.LeagueTeamStats{
				statsEntry("b1", 0, 0, 0),
				statsEntry("b2", 4, 0, 0),
				statsEntry("b3", 7, 0, 0),
			},
		},
	}

	advancing := competition.SelectAdvancing(groups, 2)
	require.Len(t, advancing, 4)
	assert.Equal(t, "a2", advancing[0].ID)
	assert.Equal(t, "a3", advancing[1].ID)
	assert.Equal(t, "b3", advancing[2].ID)
	assert.Equal(t, "b2", advancing[3].ID)
}

func TestSelectAdvancingClampsToGroupSize(t *testing.T) {
	groups := []*models.LeagueGroup{
		{Name: "Group A", Teams: []*models.LeagueTeamStats{
			statsEntry("a1", 3, 0, 0),
			statsEntry("a2", 0, 0, 0),
		}},
	}
	advancing := competition.SelectAdvancing(groups, 5)
	require.Len(t, advancing, 2)
	assert.Equal(t, "a1", advancing[0].ID)
}

func TestSelectAdvancingNonPositiveCount(t *testing.T) {
	groups := []*models.LeagueGroup{
		{Name: "Group A", Teams: []*models.LeagueTeamStats{statsEntry("a1", 3, 0, 0)}},
	}
	assert.Nil(t, competition.SelectAdvancing(groups, 0))
	assert.Nil(t, competition.SelectAdvancing(groups, -1))
}
