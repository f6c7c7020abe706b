package services

import (
	"fmt"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

// recordBracketResult decides a bracket match and advances the winner into
// its successor slot.
func recordBracketResult(bracket *models.TournamentBracket, input RecordResultInput) error {
	m := bracket.Match(input.MatchID)
	if m == nil {
		return ErrMatchNotFound
	}
	if !m.IsPlayable {
		return ErrMatchNotPlayable
	}
	if m.IsDecided {
		return ErrMatchAlreadyDecided
	}
	if input.Team1Score < 0 || input.Team2Score < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrValidationFailed)
	}

	var winner *models.BracketTeam
	switch {
	case input.Team1Score > input.Team2Score:
		winner = m.Team1
	case input.Team2Score > input.Team1Score:
		winner = m.Team2
	default:
		// Score tie: the override winner (penalty shootout or similar)
		// decides. Its value is stored, not interpreted further.
		if input.OverrideWinnerID == nil {
			return ErrOverrideWinnerRequired
		}
		switch *input.OverrideWinnerID {
		case m.Team1.ID:
			winner = m.Team1
		case m.Team2.ID:
			winner = m.Team2
		default:
			return ErrOverrideWinnerUnknown
		}
	}

	s1, s2 := input.Team1Score, input.Team2Score
	m.Team1Score = &s1
	m.Team2Score = &s2
	m.OverrideWinnerID = input.OverrideWinnerID
	winnerID := winner.ID
	m.WinnerID = &winnerID
	m.IsDecided = true

	if m.NextMatchID != nil {
		next := bracket.Match(*m.NextMatchID)
		if next == nil {
			return fmt.Errorf("match %s links to unknown successor %s", m.ID, *m.NextMatchID)
		}
		advanced := &models.BracketTeam{Team: winner.Team}
		if m.NextMatchSlot == 1 {
			next.Team1 = advanced
			next.Placeholder1 = ""
		} else {
			next.Team2 = advanced
			next.Placeholder2 = ""
		}
		next.IsPlayable = next.Team1 != nil && next.Team2 != nil &&
			!(next.Team1.IsBye && next.Team2.IsBye)
	}
	return nil
}

// recordLeagueResult updates a fixture in the preliminary stage or, once
// generated, in the final round.
func recordLeagueResult(lc *models.LeagueCompetition, input RecordResultInput) error {
	if g, m := lc.Preliminary.Match(input.MatchID); m != nil {
		return applyLeagueResult(g, m, input)
	}
	if lc.Final != nil {
		if lc.Final.Bracket != nil && lc.Final.Bracket.Match(input.MatchID) != nil {
			return recordBracketResult(lc.Final.Bracket, input)
		}
		if lc.Final.League != nil {
			if g, m := lc.Final.League.Match(input.MatchID); m != nil {
				return applyLeagueResult(g, m, input)
			}
		}
	}
	return ErrMatchNotFound
}

// applyLeagueResult writes the scores and rolls both teams' counters:
// three points for a win, one for a draw.
func applyLeagueResult(g *models.LeagueGroup, m *models.LeagueMatch, input RecordResultInput) error {
	if m.Played {
		return ErrMatchAlreadyDecided
	}
	if input.Team1Score < 0 || input.Team2Score < 0 {
		return fmt.Errorf("%w: scores must not be negative", ErrValidationFailed)
	}
	if input.OverrideWinnerID != nil &&
		*input.OverrideWinnerID != m.Team1ID && *input.OverrideWinnerID != m.Team2ID {
		return ErrOverrideWinnerUnknown
	}

	st1 := g.Stats(m.Team1ID)
	st2 := g.Stats(m.Team2ID)
	if st1 == nil || st2 == nil {
		return fmt.Errorf("match %s references a team outside its group", m.ID)
	}

	s1, s2 := input.Team1Score, input.Team2Score
	m.Team1Score = &s1
	m.Team2Score = &s2
	m.OverrideWinnerID = input.OverrideWinnerID
	m.Played = true

	applyTeamResult(st1, s1, s2)
	applyTeamResult(st2, s2, s1)
	return nil
}

func applyTeamResult(st *models.LeagueTeamStats, scored, conceded int) {
	st.Played++
	st.GoalsFor += scored
	st.GoalsAgainst += conceded
	st.GoalDifference = st.GoalsFor - st.GoalsAgainst
	switch {
	case scored > conceded:
		st.Wins++
		st.Points += 3
	case scored == conceded:
		st.Draws++
		st.Points++
	default:
		st.Losses++
	}
}
