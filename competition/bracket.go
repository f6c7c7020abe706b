package competition

import (
	"fmt"
	"math"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

// BuildBracket constructs a single-elimination bracket for the given teams.
//
// The bracket size is the smallest power of two that fits the field; the gap
// is filled with byes. Byes are granted only to the teams named in seedIDs,
// which must match the bye count exactly: seeded teams skip round 1 and are
// placed straight into the second round, while every other team is drawn
// into round 1 in input order. Empty round-1 slots are occupied by synthetic
// bye placeholders so the tree stays full.
//
// When settings is non-nil, every match that is playable at generation time
// is handed to AssignCourts in (round, position) order. Matches that only
// become playable after a result is recorded are left unscheduled.
func BuildBracket(name string, teams []models.Team, seedIDs []string, settings *models.ScheduleSettings) (*models.TournamentBracket, error) {
	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientTeams, n)
	}

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	bracketSize := 1 << uint(numRounds)
	numByes := bracketSize - n

	if len(seedIDs) != numByes {
		return nil, fmt.Errorf("%w: bracket of %d has %d byes, got %d seeds", ErrSeedMismatch, bracketSize, numByes, len(seedIDs))
	}

	isSeed := make(map[string]bool, len(seedIDs))
	for _, id := range seedIDs {
		isSeed[id] = true
	}
	entrants := make([]models.Team, 0, n-numByes)
	seeds := make([]models.Team, 0, numByes)
	for _, t := range teams {
		if isSeed[t.ID] {
			seeds = append(seeds, t)
		} else {
			entrants = append(entrants, t)
		}
	}
	if len(seeds) != len(seedIDs) {
		return nil, fmt.Errorf("%w: seed ids must name distinct entrant teams", ErrSeedMismatch)
	}

	// Build every round's match shells first, independent of team placement.
	rounds := make([]models.BracketRound, numRounds)
	for r := 0; r < numRounds; r++ {
		count := bracketSize >> uint(r+1)
		matches := make([]*models.BracketMatch, count)
		for i := range matches {
			matches[i] = &models.BracketMatch{
				ID:           fmt.Sprintf("R%dM%d", r+1, i+1),
				Round:        r,
				OrderInRound: i,
			}
		}
		rounds[r] = models.BracketRound{Name: roundName(r, numRounds), Matches: matches}
	}

	// Match i of round r feeds match i/2 of round r+1; even positions win
	// into slot 1, odd into slot 2. The final has no successor.
	for r := 0; r < numRounds-1; r++ {
		for i, m := range rounds[r].Matches {
			nextID := rounds[r+1].Matches[i/2].ID
			m.NextMatchID = &nextID
			m.NextMatchSlot = i%2 + 1
		}
	}

	// Non-seeded teams fill round-1 slots front to back, first slot then
	// second slot of each match. The remainder of round 1 is byes.
	firstRound := rounds[0].Matches
	for i := 0; i < bracketSize; i++ {
		m := firstRound[i/2]
		var bt *models.BracketTeam
		if i < len(entrants) {
			bt = &models.BracketTeam{Team: entrants[i]}
		} else {
			bt = &models.BracketTeam{
				Team:  models.Team{ID: fmt.Sprintf("bye-%d", i-len(entrants)+1), Name: "Bye"},
				IsBye: true,
			}
		}
		if i%2 == 0 {
			m.Team1 = bt
		} else {
			m.Team2 = bt
		}
	}

	// Seeded teams enter directly in round 2, in the slots fed by the all-bye
	// round-1 matches: second slots first (the first slot is normally
	// reserved for a feeding winner), then first slots for the overflow whose
	// feeder is also empty. A seed placed here has no round-1 opponent and is
	// not auto-advanced.
	if numByes > 0 {
		secondRound := rounds[1].Matches
		firstByeMatch := len(entrants) / 2
		type slotRef struct {
			match *models.BracketMatch
			slot  int
		}
		free := make([]slotRef, 0, numByes)
		for j := firstByeMatch; j < len(firstRound); j++ {
			if j%2 == 1 {
				free = append(free, slotRef{secondRound[j/2], 2})
			}
		}
		for j := firstByeMatch; j < len(firstRound); j++ {
			if j%2 == 0 {
				free = append(free, slotRef{secondRound[j/2], 1})
			}
		}
		for k, t := range seeds {
			rank := k + 1
			bt := &models.BracketTeam{Team: t, Seed: &rank}
			if free[k].slot == 2 {
				free[k].match.Team2 = bt
			} else {
				free[k].match.Team1 = bt
			}
		}
	}

	// Placeholders for every still-unfilled slot, and playability flags.
	for r := range rounds {
		for i, m := range rounds[r].Matches {
			if r > 0 {
				if m.Team1 == nil {
					m.Placeholder1 = "Winner of " + rounds[r-1].Matches[i*2].ID
				}
				if m.Team2 == nil {
					m.Placeholder2 = "Winner of " + rounds[r-1].Matches[i*2+1].ID
				}
			}
			m.IsPlayable = m.Team1 != nil && m.Team2 != nil && !(m.Team1.IsBye && m.Team2.IsBye)
		}
	}

	bracket := &models.TournamentBracket{
		Name:   name,
		Teams:  teams,
		Rounds: rounds,
	}

	if settings != nil {
		if err := scheduleBracket(bracket, *settings); err != nil {
			return nil, err
		}
	}

	return bracket, nil
}

// scheduleBracket assigns courts and start times to every match that is
// playable and undecided, in (round, position) order.
func scheduleBracket(bracket *models.TournamentBracket, settings models.ScheduleSettings) error {
	var playable []*models.BracketMatch
	var pairings []Pairing
	for _, round := range bracket.Rounds {
		for _, m := range round.Matches {
			if m.IsPlayable && !m.IsDecided {
				playable = append(playable, m)
				pairings = append(pairings, Pairing{Team1ID: m.Team1.ID, Team2ID: m.Team2.ID})
			}
		}
	}

	assignments, err := AssignCourts(pairings, settings)
	if err != nil {
		return err
	}
	for i, m := range playable {
		court := assignments[i].Court
		start := assignments[i].StartTime
		m.Court = &court
		m.StartTime = &start
	}
	return nil
}

func roundName(r, total int) string {
	switch total - r {
	case 1:
		return "Final"
	case 2:
		return "Semi-finals"
	case 3:
		return "Quarter-finals"
	default:
		return fmt.Sprintf("Round %d", r+1)
	}
}
