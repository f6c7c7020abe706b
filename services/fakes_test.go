package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/d-exit/team-management-appV5-sub000/models"
	"github.com/d-exit/team-management-appV5-sub000/repositories"
	"github.com/d-exit/team-management-appV5-sub000/services"
)

// fakeTeamRepository is an in-memory TeamRepository with the same contract as
// the Postgres implementation, including its sentinel errors.
type fakeTeamRepository struct {
	mu    sync.Mutex
	teams map[string]models.Team
	order []string
}

func newFakeTeamRepository() *fakeTeamRepository {
	return &fakeTeamRepository{teams: make(map[string]models.Team)}
}

func (r *fakeTeamRepository) Create(_ context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.Name == t.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	t.CreatedAt = time.Now().UTC()
	r.teams[t.ID] = *t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *fakeTeamRepository) GetByID(_ context.Context, id string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

// ListByIDs returns matches in reverse insertion order, deliberately not the
// requested order, the same freedom the SQL implementation has.
func (r *fakeTeamRepository) ListByIDs(_ context.Context, ids []string) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var teams []models.Team
	for i := len(r.order) - 1; i >= 0; i-- {
		if wanted[r.order[i]] {
			teams = append(teams, r.teams[r.order[i]])
		}
	}
	return teams, nil
}

func (r *fakeTeamRepository) List(_ context.Context) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teams := make([]models.Team, 0, len(r.order))
	for _, id := range r.order {
		teams = append(teams, r.teams[id])
	}
	return teams, nil
}

func (r *fakeTeamRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeCompetitionRepository stores competition records in memory. A counter
// drives the timestamps so creation order is always distinguishable.
type fakeCompetitionRepository struct {
	mu      sync.Mutex
	records map[string]*repositories.CompetitionRecord
	order   []string
	clock   int
}

func newFakeCompetitionRepository() *fakeCompetitionRepository {
	return &fakeCompetitionRepository{records: make(map[string]*repositories.CompetitionRecord)}
}

func (r *fakeCompetitionRepository) tick() time.Time {
	r.clock++
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(r.clock) * time.Second)
}

func (r *fakeCompetitionRepository) Create(_ context.Context, rec *repositories.CompetitionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.tick()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	stored := *rec
	stored.Payload = append([]byte(nil), rec.Payload...)
	r.records[rec.ID] = &stored
	r.order = append(r.order, rec.ID)
	return nil
}

func (r *fakeCompetitionRepository) GetByID(_ context.Context, id string) (*repositories.CompetitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	out := *rec
	out.Payload = append([]byte(nil), rec.Payload...)
	return &out, nil
}

func (r *fakeCompetitionRepository) List(_ context.Context) ([]repositories.CompetitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := make([]repositories.CompetitionRecord, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		rec := *r.records[r.order[i]]
		rec.Payload = nil
		records = append(records, rec)
	}
	return records, nil
}

func (r *fakeCompetitionRepository) UpdatePayload(_ context.Context, id string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return repositories.ErrCompetitionNotFound
	}
	rec.Payload = append([]byte(nil), payload...)
	rec.UpdatedAt = r.tick()
	return nil
}

func (r *fakeCompetitionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return repositories.ErrCompetitionNotFound
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// captureBroadcaster records every broadcast instead of pushing to sockets.
type captureBroadcaster struct {
	mu     sync.Mutex
	rooms  []string
	events []interface{}
}

func (b *captureBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rooms = append(b.rooms, roomID)
	b.events = append(b.events, message)
}

func (b *captureBroadcaster) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (b *captureBroadcaster) last() (string, interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		return "", nil
	}
	return b.rooms[len(b.rooms)-1], b.events[len(b.events)-1]
}

type serviceFixture struct {
	teams    *fakeTeamRepository
	comps    *fakeCompetitionRepository
	hub      *captureBroadcaster
	service  services.CompetitionService
	teamsSvc services.TeamService
}

func newServiceFixture() *serviceFixture {
	teams := newFakeTeamRepository()
	comps := newFakeCompetitionRepository()
	hub := &captureBroadcaster{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &serviceFixture{
		teams:    teams,
		comps:    comps,
		hub:      hub,
		service:  services.NewCompetitionService(teams, comps, hub, logger),
		teamsSvc: services.NewTeamService(teams),
	}
}

// seedTeams inserts n teams and returns their ids in insertion order.
func (f *serviceFixture) seedTeams(t *testing.T, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		team := &models.Team{
			ID:   uuid.New().String(),
			Name: "Team " + string(rune('A'+i)),
		}
		require.NoError(t, f.teams.Create(context.Background(), team))
		ids[i] = team.ID
	}
	return ids
}

func defaultSettings() models.ScheduleSettings {
	return models.ScheduleSettings{
		CourtCount:           2,
		StartTime:            "10:00",
		MatchDurationMinutes: 30,
		RestMinutes:          10,
	}
}
