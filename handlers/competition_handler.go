package handlers

import (
	"net/http"

	"github.com/d-exit/team-management-appV5-sub000/services"
)

type CompetitionHandler struct {
	competitionService services.CompetitionService
}

func NewCompetitionHandler(cs services.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{competitionService: cs}
}

// CreateBracket generates a single-elimination bracket from a team list.
// Seeds name the teams receiving the byes of a non-power-of-two field;
// scheduling settings are optional. POST /competitions/bracket
func (h *CompetitionHandler) CreateBracket(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBracketInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comp, err := h.competitionService.CreateBracket(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competition": comp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateLeague generates round-robin groups with a shared court schedule
// and, if requested, the final round. POST /competitions/league
func (h *CompetitionHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	var input services.CreateLeagueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comp, err := h.competitionService.CreateLeague(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competition": comp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCompetition returns the stored competition with the current team rows.
// GET /competitions/{competitionID}
func (h *CompetitionHandler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := urlParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	detail, err := h.competitionService.GetCompetitionDetail(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competition": detail.Competition, "teams": detail.Teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCompetitions returns competition summaries, newest first.
// GET /competitions
func (h *CompetitionHandler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.competitionService.ListCompetitions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitions": summaries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteCompetition removes a stored competition.
// DELETE /competitions/{competitionID}
func (h *CompetitionHandler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := urlParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.competitionService.DeleteCompetition(r.Context(), competitionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordResult writes a match result into an already-generated structure.
// The schedule is left untouched.
// POST /competitions/{competitionID}/matches/{matchID}/result
func (h *CompetitionHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	competitionID, err := urlParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := urlParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.CompetitionID = competitionID
	input.MatchID = matchID

	comp, err := h.competitionService.RecordResult(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competition": comp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateFinals composes the deferred final round of a league competition
// from its current standings. POST /competitions/{competitionID}/finals
func (h *CompetitionHandler) GenerateFinals(w http.ResponseWriter, r *http.Request) {
	competitionID, err := urlParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comp, err := h.competitionService.GenerateFinalRound(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competition": comp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
