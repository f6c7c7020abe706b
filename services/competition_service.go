package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/d-exit/team-management-appV5-sub000/competition"
	"github.com/d-exit/team-management-appV5-sub000/models"
	"github.com/d-exit/team-management-appV5-sub000/realtime"
	"github.com/d-exit/team-management-appV5-sub000/repositories"
)

// Broadcaster pushes events to the websocket room of a competition.
// *realtime.Hub satisfies it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

type CreateBracketInput struct {
	Name    string                   `json:"name"`
	TeamIDs []string                 `json:"team_ids"`
	SeedIDs []string                 `json:"seed_ids"`
	Setting *models.ScheduleSettings `json:"settings"`
}

type CreateLeagueInput struct {
	Name            string                  `json:"name"`
	TeamIDs         []string                `json:"team_ids"`
	GroupCount      int                     `json:"group_count"`
	Settings        models.ScheduleSettings `json:"settings"`
	AdvanceCount    int                     `json:"advance_count"`
	WantsFinalRound bool                    `json:"wants_final_round"`
	FinalKind       models.FinalKind        `json:"final_kind"`
}

type RecordResultInput struct {
	CompetitionID    string  `json:"-"`
	MatchID          string  `json:"-"`
	Team1Score       int     `json:"team1_score"`
	Team2Score       int     `json:"team2_score"`
	OverrideWinnerID *string `json:"override_winner_id"`
}

type CompetitionSummary struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Kind      models.CompetitionKind `json:"kind"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// CompetitionDetail pairs a stored competition with the current team rows,
// so renderers get up-to-date display fields without touching the payload.
type CompetitionDetail struct {
	Competition *models.Competition `json:"competition"`
	Teams       []models.Team       `json:"teams"`
}

type CompetitionService interface {
	CreateBracket(ctx context.Context, input CreateBracketInput) (*models.Competition, error)
	CreateLeague(ctx context.Context, input CreateLeagueInput) (*models.Competition, error)
	GetCompetition(ctx context.Context, id string) (*models.Competition, error)
	GetCompetitionDetail(ctx context.Context, id string) (*CompetitionDetail, error)
	ListCompetitions(ctx context.Context) ([]CompetitionSummary, error)
	DeleteCompetition(ctx context.Context, id string) error
	RecordResult(ctx context.Context, input RecordResultInput) (*models.Competition, error)
	GenerateFinalRound(ctx context.Context, competitionID string) (*models.Competition, error)
}

type competitionService struct {
	teamRepo repositories.TeamRepository
	compRepo repositories.CompetitionRepository
	hub      Broadcaster
	logger   *slog.Logger
}

func NewCompetitionService(
	teamRepo repositories.TeamRepository,
	compRepo repositories.CompetitionRepository,
	hub Broadcaster,
	logger *slog.Logger,
) CompetitionService {
	return &competitionService{
		teamRepo: teamRepo,
		compRepo: compRepo,
		hub:      hub,
		logger:   logger,
	}
}

func (s *competitionService) CreateBracket(ctx context.Context, input CreateBracketInput) (*models.Competition, error) {
	if input.Name == "" {
		return nil, ErrCompetitionNameRequired
	}
	teams, err := s.resolveTeams(ctx, input.TeamIDs)
	if err != nil {
		return nil, err
	}

	bracket, err := competition.BuildBracket(input.Name, teams, input.SeedIDs, input.Setting)
	if err != nil {
		return nil, err
	}

	comp := &models.Competition{
		ID:   uuid.New().String(),
		Name: input.Name,
		Result: models.CompetitionResult{
			Kind:    models.CompetitionBracket,
			Bracket: bracket,
		},
	}
	bracket.ID = comp.ID

	if err := s.store(ctx, comp); err != nil {
		return nil, err
	}

	s.logger.Info("bracket generated",
		slog.String("competition_id", comp.ID),
		slog.Int("teams", len(teams)),
		slog.Int("rounds", len(bracket.Rounds)))
	s.hub.BroadcastToRoom(comp.ID, realtime.Event{
		Type:          realtime.EventCompetitionCreated,
		CompetitionID: comp.ID,
		Payload:       comp,
	})
	return comp, nil
}

func (s *competitionService) CreateLeague(ctx context.Context, input CreateLeagueInput) (*models.Competition, error) {
	if input.Name == "" {
		return nil, ErrCompetitionNameRequired
	}
	teams, err := s.resolveTeams(ctx, input.TeamIDs)
	if err != nil {
		return nil, err
	}

	table, err := competition.BuildLeagueTable(teams, competition.LeagueParams{
		Name:            input.Name,
		GroupCount:      input.GroupCount,
		Settings:        input.Settings,
		AdvanceCount:    input.AdvanceCount,
		WantsFinalRound: input.WantsFinalRound,
		FinalKind:       input.FinalKind,
	})
	if err != nil {
		return nil, err
	}

	comp := &models.Competition{
		ID:   uuid.New().String(),
		Name: input.Name,
	}
	table.ID = comp.ID
	comp.Result = models.CompetitionResult{
		Kind: models.CompetitionLeague,
		League: &models.LeagueCompetition{
			ID:              comp.ID,
			Name:            input.Name,
			Preliminary:     table,
			AdvanceCount:    input.AdvanceCount,
			FinalKind:       input.FinalKind,
			Final:           table.FinalRound,
			FinalsGenerated: table.FinalRound != nil,
		},
	}

	if err := s.store(ctx, comp); err != nil {
		return nil, err
	}

	s.logger.Info("league generated",
		slog.String("competition_id", comp.ID),
		slog.Int("teams", len(teams)),
		slog.Int("groups", input.GroupCount))
	s.hub.BroadcastToRoom(comp.ID, realtime.Event{
		Type:          realtime.EventCompetitionCreated,
		CompetitionID: comp.ID,
		Payload:       comp,
	})
	return comp, nil
}

func (s *competitionService) GetCompetition(ctx context.Context, id string) (*models.Competition, error) {
	rec, err := s.compRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return decodeCompetition(rec)
}

// GetCompetitionDetail loads the competition payload and the team roster
// concurrently, then joins the roster down to the competition's teams.
func (s *competitionService) GetCompetitionDetail(ctx context.Context, id string) (*CompetitionDetail, error) {
	var comp *models.Competition
	var allTeams []models.Team

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comp, err = s.GetCompetition(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		allTeams, err = s.teamRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]models.Team, len(allTeams))
	for _, t := range allTeams {
		byID[t.ID] = t
	}
	ids := competitionTeamIDs(comp)
	teams := make([]models.Team, 0, len(ids))
	for _, tid := range ids {
		if t, ok := byID[tid]; ok {
			teams = append(teams, t)
		}
	}

	return &CompetitionDetail{Competition: comp, Teams: teams}, nil
}

func (s *competitionService) ListCompetitions(ctx context.Context) ([]CompetitionSummary, error) {
	records, err := s.compRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]CompetitionSummary, len(records))
	for i, rec := range records {
		summaries[i] = CompetitionSummary{
			ID:        rec.ID,
			Name:      rec.Name,
			Kind:      rec.Kind,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		}
	}
	return summaries, nil
}

func (s *competitionService) DeleteCompetition(ctx context.Context, id string) error {
	err := s.compRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrCompetitionNotFound) {
		return ErrCompetitionNotFound
	}
	return err
}

// RecordResult writes a played match's scores into an already-generated
// structure. This is a plain field update: the scheduler is never re-run and
// court/time assignments stay as generated.
func (s *competitionService) RecordResult(ctx context.Context, input RecordResultInput) (*models.Competition, error) {
	comp, err := s.GetCompetition(ctx, input.CompetitionID)
	if err != nil {
		return nil, err
	}

	switch comp.Result.Kind {
	case models.CompetitionBracket:
		err = recordBracketResult(comp.Result.Bracket, input)
	case models.CompetitionLeague:
		err = recordLeagueResult(comp.Result.League, input)
	default:
		err = fmt.Errorf("%w: unknown competition kind %q", ErrValidationFailed, comp.Result.Kind)
	}
	if err != nil {
		return nil, err
	}

	if err := s.update(ctx, comp); err != nil {
		return nil, err
	}

	s.logger.Info("result recorded",
		slog.String("competition_id", comp.ID),
		slog.String("match_id", input.MatchID))
	s.hub.BroadcastToRoom(comp.ID, realtime.Event{
		Type:          realtime.EventMatchUpdated,
		CompetitionID: comp.ID,
		Payload:       map[string]string{"match_id": input.MatchID},
	})
	return comp, nil
}

// GenerateFinalRound ranks the played group stage and composes the final
// structure for a league competition whose finals were deferred at creation.
func (s *competitionService) GenerateFinalRound(ctx context.Context, competitionID string) (*models.Competition, error) {
	comp, err := s.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	lc := comp.Result.League
	if comp.Result.Kind != models.CompetitionLeague || lc == nil {
		return nil, ErrNotLeagueCompetition
	}
	if lc.FinalsGenerated {
		return nil, ErrFinalsAlreadyGenerated
	}
	if lc.AdvanceCount < 1 {
		return nil, ErrFinalsNotConfigured
	}

	advancing := competition.SelectAdvancing(lc.Preliminary.Groups, lc.AdvanceCount)
	final, err := competition.ComposeFinalRound(advancing, lc.FinalKind, lc.Preliminary.Settings)
	if err != nil {
		return nil, err
	}
	lc.Final = final
	lc.Preliminary.FinalRound = final
	lc.FinalsGenerated = true

	if err := s.update(ctx, comp); err != nil {
		return nil, err
	}

	s.logger.Info("final round generated",
		slog.String("competition_id", comp.ID),
		slog.String("kind", string(lc.FinalKind)),
		slog.Int("advancing", len(advancing)))
	s.hub.BroadcastToRoom(comp.ID, realtime.Event{
		Type:          realtime.EventFinalsGenerated,
		CompetitionID: comp.ID,
		Payload:       final,
	})
	return comp, nil
}

// resolveTeams loads the teams for the given ids, preserving the callers'
// order. Generation is order-sensitive, so the database's return order must
// not leak into the result.
func (s *competitionService) resolveTeams(ctx context.Context, ids []string) ([]models.Team, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one team id is required", ErrValidationFailed)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate team id %s", ErrValidationFailed, id)
		}
		seen[id] = true
	}

	rows, err := s.teamRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Team, len(rows))
	for _, t := range rows {
		byID[t.ID] = t
	}

	teams := make([]models.Team, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, id)
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (s *competitionService) store(ctx context.Context, comp *models.Competition) error {
	payload, err := json.Marshal(comp)
	if err != nil {
		return fmt.Errorf("failed to encode competition: %w", err)
	}
	rec := &repositories.CompetitionRecord{
		ID:      comp.ID,
		Name:    comp.Name,
		Kind:    comp.Result.Kind,
		Payload: payload,
	}
	if err := s.compRepo.Create(ctx, rec); err != nil {
		return err
	}
	comp.CreatedAt = rec.CreatedAt
	comp.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *competitionService) update(ctx context.Context, comp *models.Competition) error {
	comp.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(comp)
	if err != nil {
		return fmt.Errorf("failed to encode competition: %w", err)
	}
	err = s.compRepo.UpdatePayload(ctx, comp.ID, payload)
	if errors.Is(err, repositories.ErrCompetitionNotFound) {
		return ErrCompetitionNotFound
	}
	return err
}

func decodeCompetition(rec *repositories.CompetitionRecord) (*models.Competition, error) {
	var comp models.Competition
	if err := json.Unmarshal(rec.Payload, &comp); err != nil {
		return nil, fmt.Errorf("failed to decode competition %s: %w", rec.ID, err)
	}
	comp.CreatedAt = rec.CreatedAt
	comp.UpdatedAt = rec.UpdatedAt
	return &comp, nil
}

func competitionTeamIDs(comp *models.Competition) []string {
	switch comp.Result.Kind {
	case models.CompetitionBracket:
		ids := make([]string, 0, len(comp.Result.Bracket.Teams))
		for _, t := range comp.Result.Bracket.Teams {
			ids = append(ids, t.ID)
		}
		return ids
	case models.CompetitionLeague:
		var ids []string
		for _, g := range comp.Result.League.Preliminary.Groups {
			for _, st := range g.Teams {
				ids = append(ids, st.Team.ID)
			}
		}
		return ids
	}
	return nil
}
