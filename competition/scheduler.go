package competition

import (
	"fmt"

	"github.com/d-exit/team-management-appV5-sub000/models"
)

// schedulerToleranceMinutes is how far past the current frontier a match may
// start and still be placed in the same sweep. The threshold is inherited
// from the original scheduler; it has no business meaning but changing it
// changes every produced schedule.
const schedulerToleranceMinutes = 5

// Pairing identifies the two teams of a match awaiting a court and a start
// time.
type Pairing struct {
	Team1ID string
	Team2ID string
}

// Assignment is the court (1-based) and start time given to the pairing at
// the same index of the AssignCourts input.
type Assignment struct {
	Court     int
	StartTime string
}

// AssignCourts assigns every pairing exactly one court and start time such
// that no team plays two overlapping matches and no court is double-booked.
// A team is busy from its match start until start+duration; a court is busy
// until start+duration+rest.
//
// The algorithm is a greedy list scheduler biased toward parallelism: each
// sweep computes the earliest next-available time across all courts (the
// frontier) and tries to fill every court at that frontier before advancing
// time. Within a sweep each court takes the first pending pairing, in input
// order, whose teams and court are free at or within the tolerance of the
// frontier. When a full sweep places nothing, every court frontier is pulled
// up to the earliest point any pending pairing becomes eligible.
//
// The result is deterministic and order-sensitive, not globally optimal.
func AssignCourts(pairings []Pairing, settings models.ScheduleSettings) ([]Assignment, error) {
	if settings.CourtCount < 1 {
		return nil, fmt.Errorf("%w: court count must be at least 1, got %d", ErrInvalidSettings, settings.CourtCount)
	}
	if settings.MatchDurationMinutes < 1 {
		return nil, fmt.Errorf("%w: match duration must be at least 1 minute, got %d", ErrInvalidSettings, settings.MatchDurationMinutes)
	}
	if settings.RestMinutes < 0 {
		return nil, fmt.Errorf("%w: rest duration must not be negative, got %d", ErrInvalidSettings, settings.RestMinutes)
	}
	eventStart, err := parseClock(settings.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	duration := settings.MatchDurationMinutes
	rest := settings.RestMinutes

	courtNext := make([]int, settings.CourtCount)
	for c := range courtNext {
		courtNext[c] = eventStart
	}
	teamNext := make(map[string]int)
	teamReadyAt := func(id string) int {
		if t, ok := teamNext[id]; ok {
			return t
		}
		return eventStart
	}

	assignments := make([]Assignment, len(pairings))
	pending := make([]int, len(pairings))
	for i := range pending {
		pending[i] = i
	}

	for len(pending) > 0 {
		frontier := courtNext[0]
		for _, t := range courtNext[1:] {
			if t < frontier {
				frontier = t
			}
		}

		placed := false
		for c := range courtNext {
			for pi, idx := range pending {
				p := pairings[idx]
				teamsReady := max(teamReadyAt(p.Team1ID), teamReadyAt(p.Team2ID))
				if teamsReady > frontier+schedulerToleranceMinutes {
					continue
				}
				earliest := max(teamsReady, courtNext[c])
				if earliest > frontier+schedulerToleranceMinutes {
					continue
				}
				startAt := max(frontier, earliest)
				assignments[idx] = Assignment{Court: c + 1, StartTime: formatClock(startAt)}
				courtNext[c] = startAt + duration + rest
				teamNext[p.Team1ID] = startAt + duration
				teamNext[p.Team2ID] = startAt + duration
				pending = append(pending[:pi], pending[pi+1:]...)
				placed = true
				break
			}
		}

		if !placed {
			// Every pending pairing is blocked on a team finishing later
			// than any court frontier. Pull all courts up to the earliest
			// point a pairing becomes eligible so the next sweep can place
			// it.
			minReady := -1
			for _, idx := range pending {
				p := pairings[idx]
				ready := max(teamReadyAt(p.Team1ID), teamReadyAt(p.Team2ID))
				if minReady < 0 || ready < minReady {
					minReady = ready
				}
			}
			advanced := false
			for c := range courtNext {
				if courtNext[c] < minReady {
					courtNext[c] = minReady
					advanced = true
				}
			}
			if !advanced {
				return nil, errSchedulingStall
			}
		}
	}

	return assignments, nil
}
