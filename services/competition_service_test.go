package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-exit/team-management-appV5-sub000/competition"
	"github.com/d-exit/team-management-appV5-sub000/models"
	"github.com/d-exit/team-management-appV5-sub000/realtime"
	"github.com/d-exit/team-management-appV5-sub000/services"
)

func TestCreateBracketStoresAndBroadcasts(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)
	settings := defaultSettings()

	comp, err := f.service.CreateBracket(context.Background(), services.CreateBracketInput{
		Name:    "Summer Cup",
		TeamIDs: ids,
		Setting: &settings,
	})
	require.NoError(t, err)

	require.NotEmpty(t, comp.ID)
	assert.Equal(t, "Summer Cup", comp.Name)
	assert.Equal(t, models.CompetitionBracket, comp.Result.Kind)
	require.NotNil(t, comp.Result.Bracket)
	assert.Equal(t, comp.ID, comp.Result.Bracket.ID)
	assert.False(t, comp.CreatedAt.IsZero())

	stored, err := f.service.GetCompetition(context.Background(), comp.ID)
	require.NoError(t, err)
	assert.Equal(t, comp.ID, stored.ID)
	assert.Len(t, stored.Result.Bracket.Rounds, 2)

	require.Equal(t, 1, f.hub.len())
	room, msg := f.hub.last()
	assert.Equal(t, comp.ID, room)
	event, ok := msg.(realtime.Event)
	require.True(t, ok)
	assert.Equal(t, realtime.EventCompetitionCreated, event.Type)
	assert.Equal(t, comp.ID, event.CompetitionID)
}

func TestCreateBracketPreservesRequestedTeamOrder(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)
	requested := []string{ids[2], ids[0], ids[3], ids[1]}

	comp, err := f.service.CreateBracket(context.Background(), services.CreateBracketInput{
		Name:    "Ordered Cup",
		TeamIDs: requested,
	})
	require.NoError(t, err)

	bracket := comp.Result.Bracket
	require.Len(t, bracket.Teams, 4)
	for i, id := range requested {
		assert.Equal(t, id, bracket.Teams[i].ID)
	}
	assert.Equal(t, requested[0], bracket.Rounds[0].Matches[0].Team1.ID)
	assert.Equal(t, requested[1], bracket.Rounds[0].Matches[0].Team2.ID)
}

func TestCreateBracketValidation(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)

	t.Run("missing name", func(t *testing.T) {
		_, err := f.service.CreateBracket(context.Background(), services.CreateBracketInput{TeamIDs: ids})
		assert.ErrorIs(t, err, services.ErrCompetitionNameRequired)
	})

	t.Run("no team ids", func(t *testing.T) {
		_, err := f.service.CreateBracket(context.Background(), services.CreateBracketInput{Name: "Cup"})
		assert.ErrorIs(t, err, services.ErrValidationFailed)
	})

	t.Run("duplicate team ids", func(t *testing.T) {
		_, err := f.service.CreateBracket(context.Background(), services.CreateBracketInput{
			Name:    "Cup",
			TeamIDs: []string{ids[0], ids[0]},
		})
		assert.ErrorIs(t, err, services.ErrValidationFailed)
	})

	t.Run("unknown team id", func(t *testing.T) {
		_, err := f.service.CreateBracket(context.Background(), services.CreateBracketInput{
			Name:    "Cup",
			TeamIDs: []string{ids[0], "missing"},
		})
		assert.ErrorIs(t, err, services.ErrTeamNotFound)
	})

	t.Run("generation failure passes through", func(t *testing.T) {
		_, err := f.service.CreateBracket(context.Background(), services.CreateBracketInput{
			Name:    "Cup",
			TeamIDs: ids[:3],
		})
		assert.ErrorIs(t, err, competition.ErrSeedMismatch)
	})

	list, err := f.service.ListCompetitions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "failed creations must not be stored")
	assert.Zero(t, f.hub.len(), "failed creations must not broadcast")
}

func TestRecordBracketResult(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)
	ctx := context.Background()

	comp, err := f.service.CreateBracket(ctx, services.CreateBracketInput{
		Name:    "Cup",
		TeamIDs: ids,
	})
	require.NoError(t, err)

	updated, err := f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID: comp.ID,
		MatchID:       "R1M1",
		Team1Score:    2,
		Team2Score:    1,
	})
	require.NoError(t, err)

	m := updated.Result.Bracket.Match("R1M1")
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, ids[0], *m.WinnerID)
	assert.True(t, m.IsDecided)

	// The winner moved into the final's first slot; the second is still open.
	final := updated.Result.Bracket.Match("R2M1")
	require.NotNil(t, final.Team1)
	assert.Equal(t, ids[0], final.Team1.ID)
	assert.Empty(t, final.Placeholder1)
	assert.False(t, final.IsPlayable)

	t.Run("decided matches stay decided", func(t *testing.T) {
		_, err := f.service.RecordResult(ctx, services.RecordResultInput{
			CompetitionID: comp.ID,
			MatchID:       "R1M1",
			Team1Score:    5,
			Team2Score:    0,
		})
		assert.ErrorIs(t, err, services.ErrMatchAlreadyDecided)
	})

	t.Run("half-filled match is not playable", func(t *testing.T) {
		_, err := f.service.RecordResult(ctx, services.RecordResultInput{
			CompetitionID: comp.ID,
			MatchID:       "R2M1",
			Team1Score:    1,
			Team2Score:    0,
		})
		assert.ErrorIs(t, err, services.ErrMatchNotPlayable)
	})

	t.Run("tie requires an override winner", func(t *testing.T) {
		_, err := f.service.RecordResult(ctx, services.RecordResultInput{
			CompetitionID: comp.ID,
			MatchID:       "R1M2",
			Team1Score:    1,
			Team2Score:    1,
		})
		assert.ErrorIs(t, err, services.ErrOverrideWinnerRequired)

		outsider := ids[0]
		_, err = f.service.RecordResult(ctx, services.RecordResultInput{
			CompetitionID:    comp.ID,
			MatchID:          "R1M2",
			Team1Score:       1,
			Team2Score:       1,
			OverrideWinnerID: &outsider,
		})
		assert.ErrorIs(t, err, services.ErrOverrideWinnerUnknown)
	})

	override := ids[3]
	updated, err = f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID:    comp.ID,
		MatchID:          "R1M2",
		Team1Score:       1,
		Team2Score:       1,
		OverrideWinnerID: &override,
	})
	require.NoError(t, err)

	m = updated.Result.Bracket.Match("R1M2")
	require.NotNil(t, m.WinnerID)
	assert.Equal(t, ids[3], *m.WinnerID)

	final = updated.Result.Bracket.Match("R2M1")
	assert.True(t, final.IsPlayable)

	updated, err = f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID: comp.ID,
		MatchID:       "R2M1",
		Team1Score:    3,
		Team2Score:    2,
	})
	require.NoError(t, err)
	final = updated.Result.Bracket.Match("R2M1")
	require.NotNil(t, final.WinnerID)
	assert.Equal(t, ids[0], *final.WinnerID)

	t.Run("unknown match", func(t *testing.T) {
		_, err := f.service.RecordResult(ctx, services.RecordResultInput{
			CompetitionID: comp.ID,
			MatchID:       "R9M9",
		})
		assert.ErrorIs(t, err, services.ErrMatchNotFound)
	})

	t.Run("unknown competition", func(t *testing.T) {
		_, err := f.service.RecordResult(ctx, services.RecordResultInput{
			CompetitionID: "missing",
			MatchID:       "R1M1",
		})
		assert.ErrorIs(t, err, services.ErrCompetitionNotFound)
	})
}

func TestRecordLeagueResultUpdatesStandings(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)
	ctx := context.Background()

	comp, err := f.service.CreateLeague(ctx, services.CreateLeagueInput{
		Name:       "Spring League",
		TeamIDs:    ids,
		GroupCount: 1,
		Settings:   defaultSettings(),
	})
	require.NoError(t, err)

	// G1M1 is the fixture between the first two assigned teams.
	updated, err := f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID: comp.ID,
		MatchID:       "G1M1",
		Team1Score:    3,
		Team2Score:    1,
	})
	require.NoError(t, err)

	group := updated.Result.League.Preliminary.Groups[0]
	winner := group.Stats(ids[0])
	require.NotNil(t, winner)
	assert.Equal(t, 1, winner.Played)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 3, winner.Points)
	assert.Equal(t, 3, winner.GoalsFor)
	assert.Equal(t, 1, winner.GoalsAgainst)
	assert.Equal(t, 2, winner.GoalDifference)

	loser := group.Stats(ids[1])
	require.NotNil(t, loser)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 0, loser.Points)
	assert.Equal(t, -2, loser.GoalDifference)

	// G1M6 pairs the last two assigned teams; a draw gives a point each.
	updated, err = f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID: comp.ID,
		MatchID:       "G1M6",
		Team1Score:    2,
		Team2Score:    2,
	})
	require.NoError(t, err)

	group = updated.Result.League.Preliminary.Groups[0]
	for _, id := range []string{ids[2], ids[3]} {
		st := group.Stats(id)
		require.NotNil(t, st)
		assert.Equal(t, 1, st.Draws)
		assert.Equal(t, 1, st.Points)
		assert.Equal(t, 0, st.GoalDifference)
	}

	// The standings survive the round trip through the payload store.
	reloaded, err := f.service.GetCompetition(ctx, comp.ID)
	require.NoError(t, err)
	st := reloaded.Result.League.Preliminary.Groups[0].Stats(ids[0])
	require.NotNil(t, st)
	assert.Equal(t, 3, st.Points)
}

func TestGenerateFinalRound(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)
	ctx := context.Background()

	comp, err := f.service.CreateLeague(ctx, services.CreateLeagueInput{
		Name:         "Spring League",
		TeamIDs:      ids,
		GroupCount:   2,
		Settings:     defaultSettings(),
		AdvanceCount: 1,
		FinalKind:    models.FinalKindTournament,
	})
	require.NoError(t, err)
	assert.False(t, comp.Result.League.FinalsGenerated)
	assert.Nil(t, comp.Result.League.Final)

	// Group A holds ids[0] and ids[2], group B ids[1] and ids[3]. The second
	// team wins each group match so the first-assigned teams do not advance.
	_, err = f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID: comp.ID, MatchID: "G1M1", Team1Score: 0, Team2Score: 2,
	})
	require.NoError(t, err)
	_, err = f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID: comp.ID, MatchID: "G2M1", Team1Score: 1, Team2Score: 3,
	})
	require.NoError(t, err)

	updated, err := f.service.GenerateFinalRound(ctx, comp.ID)
	require.NoError(t, err)

	lc := updated.Result.League
	assert.True(t, lc.FinalsGenerated)
	require.NotNil(t, lc.Final)
	assert.Equal(t, models.FinalKindTournament, lc.Final.Kind)
	require.Len(t, lc.Final.Teams, 2)
	assert.Equal(t, ids[2], lc.Final.Teams[0].ID)
	assert.Equal(t, ids[3], lc.Final.Teams[1].ID)
	require.NotNil(t, lc.Final.Bracket)

	room, msg := f.hub.last()
	assert.Equal(t, comp.ID, room)
	event, ok := msg.(realtime.Event)
	require.True(t, ok)
	assert.Equal(t, realtime.EventFinalsGenerated, event.Type)

	t.Run("finals can only be generated once", func(t *testing.T) {
		_, err := f.service.GenerateFinalRound(ctx, comp.ID)
		assert.ErrorIs(t, err, services.ErrFinalsAlreadyGenerated)
	})

	// Results flow into the generated final bracket like any other match.
	updated, err = f.service.RecordResult(ctx, services.RecordResultInput{
		CompetitionID: comp.ID,
		MatchID:       "R1M1",
		Team1Score:    2,
		Team2Score:    0,
	})
	require.NoError(t, err)
	finalMatch := updated.Result.League.Final.Bracket.Match("R1M1")
	require.NotNil(t, finalMatch.WinnerID)
	assert.Equal(t, ids[2], *finalMatch.WinnerID)
}

func TestGenerateFinalRoundErrors(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)
	ctx := context.Background()

	t.Run("unknown competition", func(t *testing.T) {
		_, err := f.service.GenerateFinalRound(ctx, "missing")
		assert.ErrorIs(t, err, services.ErrCompetitionNotFound)
	})

	t.Run("bracket competitions have no group stage", func(t *testing.T) {
		comp, err := f.service.CreateBracket(ctx, services.CreateBracketInput{
			Name:    "Cup",
			TeamIDs: ids,
		})
		require.NoError(t, err)

		_, err = f.service.GenerateFinalRound(ctx, comp.ID)
		assert.ErrorIs(t, err, services.ErrNotLeagueCompetition)
	})

	t.Run("no advancement rule configured", func(t *testing.T) {
		comp, err := f.service.CreateLeague(ctx, services.CreateLeagueInput{
			Name:       "Casual League",
			TeamIDs:    ids,
			GroupCount: 2,
			Settings:   defaultSettings(),
		})
		require.NoError(t, err)

		_, err = f.service.GenerateFinalRound(ctx, comp.ID)
		assert.ErrorIs(t, err, services.ErrFinalsNotConfigured)
	})
}

func TestCreateLeagueWithImmediateFinal(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 6)
	ctx := context.Background()

	comp, err := f.service.CreateLeague(ctx, services.CreateLeagueInput{
		Name:            "Spring League",
		TeamIDs:         ids,
		GroupCount:      2,
		Settings:        defaultSettings(),
		AdvanceCount:    1,
		WantsFinalRound: true,
		FinalKind:       models.FinalKindTournament,
	})
	require.NoError(t, err)

	lc := comp.Result.League
	assert.True(t, lc.FinalsGenerated)
	require.NotNil(t, lc.Final)
	require.NotNil(t, lc.Final.Bracket)
	require.Len(t, lc.Final.Teams, 2)

	_, err = f.service.GenerateFinalRound(ctx, comp.ID)
	assert.ErrorIs(t, err, services.ErrFinalsAlreadyGenerated)
}

func TestCreateLeagueGenerationFailurePassesThrough(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)

	_, err := f.service.CreateLeague(context.Background(), services.CreateLeagueInput{
		Name:       "Broken League",
		TeamIDs:    ids,
		GroupCount: 3,
		Settings:   defaultSettings(),
	})
	assert.ErrorIs(t, err, competition.ErrInvalidGroupCount)
}

func TestGetCompetitionDetail(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 2)
	ctx := context.Background()

	comp, err := f.service.CreateBracket(ctx, services.CreateBracketInput{
		Name:    "Cup",
		TeamIDs: ids,
	})
	require.NoError(t, err)

	detail, err := f.service.GetCompetitionDetail(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, comp.ID, detail.Competition.ID)
	require.Len(t, detail.Teams, 2)
	assert.Equal(t, ids[0], detail.Teams[0].ID)
	assert.Equal(t, ids[1], detail.Teams[1].ID)
	assert.NotEmpty(t, detail.Teams[0].Name)
}

func TestListCompetitionsNewestFirst(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 4)
	ctx := context.Background()

	first, err := f.service.CreateBracket(ctx, services.CreateBracketInput{Name: "First Cup", TeamIDs: ids})
	require.NoError(t, err)
	second, err := f.service.CreateLeague(ctx, services.CreateLeagueInput{
		Name:       "Second League",
		TeamIDs:    ids,
		GroupCount: 2,
		Settings:   defaultSettings(),
	})
	require.NoError(t, err)

	list, err := f.service.ListCompetitions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, models.CompetitionLeague, list[0].Kind)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, models.CompetitionBracket, list[1].Kind)
}

func TestDeleteCompetition(t *testing.T) {
	f := newServiceFixture()
	ids := f.seedTeams(t, 2)
	ctx := context.Background()

	comp, err := f.service.CreateBracket(ctx, services.CreateBracketInput{Name: "Cup", TeamIDs: ids})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteCompetition(ctx, comp.ID))

	_, err = f.service.GetCompetition(ctx, comp.ID)
	assert.ErrorIs(t, err, services.ErrCompetitionNotFound)
	assert.ErrorIs(t, f.service.DeleteCompetition(ctx, comp.ID), services.ErrCompetitionNotFound)
}
