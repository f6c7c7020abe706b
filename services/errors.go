package services

import "errors"

// Errors shared across services and the HTTP mapping layer. Generation
// failures from the competition package (insufficient teams, seed mismatch,
// invalid group count, invalid settings) pass through unchanged and are
// mapped by the handlers alongside these.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrTeamNotFound            = errors.New("team not found")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrTeamNameConflict        = errors.New("team name is already in use")
	ErrCompetitionNotFound     = errors.New("competition not found")
	ErrCompetitionNameRequired = errors.New("competition name is required")

	ErrMatchNotFound          = errors.New("match not found in competition")
	ErrMatchNotPlayable       = errors.New("match is not playable yet")
	ErrMatchAlreadyDecided    = errors.New("match already has a recorded result")
	ErrOverrideWinnerRequired = errors.New("a drawn bracket match needs an override winner")
	ErrOverrideWinnerUnknown  = errors.New("override winner must be one of the match's teams")

	ErrNotLeagueCompetition   = errors.New("competition has no league stage")
	ErrFinalsAlreadyGenerated = errors.New("final round has already been generated")
	ErrFinalsNotConfigured    = errors.New("competition has no advancement rule configured")
)
