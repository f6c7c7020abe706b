package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/d-exit/team-management-appV5-sub000/models"
	"github.com/d-exit/team-management-appV5-sub000/repositories"
)

type CreateTeamInput struct {
	Name    string  `json:"name"`
	Rating  int     `json:"rating"`
	LogoURL *string `json:"logo_url"`
	Coach   *string `json:"coach"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

type teamService struct {
	teamRepo repositories.TeamRepository
}

func NewTeamService(teamRepo repositories.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if input.Rating < 0 {
		return nil, fmt.Errorf("%w: rating must not be negative", ErrValidationFailed)
	}

	team := &models.Team{
		ID:      uuid.New().String(),
		Name:    input.Name,
		Rating:  input.Rating,
		LogoURL: input.LogoURL,
		Coach:   input.Coach,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.teamRepo.List(ctx)
}

func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	err := s.teamRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return ErrTeamNotFound
	}
	return err
}
