package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/d-exit/team-management-appV5-sub000/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	teamHandler *handlers.TeamHandler,
	competitionHandler *handlers.CompetitionHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/teams", func(r chi.Router) {
		r.Post("/", teamHandler.CreateTeam)
		r.Get("/", teamHandler.ListTeams)
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Delete("/{teamID}", teamHandler.DeleteTeam)
	})

	router.Route("/competitions", func(r chi.Router) {
		r.Post("/bracket", competitionHandler.CreateBracket)
		r.Post("/league", competitionHandler.CreateLeague)
		r.Get("/", competitionHandler.ListCompetitions)
		r.Get("/{competitionID}", competitionHandler.GetCompetition)
		r.Delete("/{competitionID}", competitionHandler.DeleteCompetition)
		r.Post("/{competitionID}/matches/{matchID}/result", competitionHandler.RecordResult)
		r.Post("/{competitionID}/finals", competitionHandler.GenerateFinals)
	})

	router.Get("/ws/competitions/{competitionID}", webSocketHandler.Subscribe)
}
