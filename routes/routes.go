package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/trungvq/football-predictions/handlers"
	"github.com/trungvq/football-predictions/middleware"
	"github.com/trungvq/football-predictions/models"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Match       *handlers.MatchHandler
	Prediction  *handlers.PredictionHandler
	Leaderboard *handlers.LeaderboardHandler
	Team        *handlers.TeamHandler
	Vote        *handlers.VoteHandler
	UserAdmin   *handlers.UserAdminHandler
	Dashboard   *handlers.DashboardHandler
	WebSocket   *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string, allowedOrigins []string) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	// Public
	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/matches", h.Match.List)
	router.Get("/matches/feed", h.Match.Feed)
	router.Get("/matches/{matchID}", h.Match.GetDetail)
	router.Get("/leaderboard", h.Leaderboard.Get)
	router.Get("/teams", h.Team.List)
	router.Get("/teams/{teamID}", h.Team.Get)

	router.Get("/ws/matches", h.WebSocket.ServeWs)

	// Authenticated users
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Post("/predict", h.Prediction.Predict)
		r.Get("/predictions/mine", h.Prediction.Mine)
		r.Post("/vote-teams", h.Vote.Vote)
		r.Get("/vote-teams/mine", h.Vote.Mine)
	})

	// Admin
	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Post("/matches", h.Match.Create)
		r.Put("/matches/{matchID}", h.Match.UpdateInfo)
		r.Put("/matches/{matchID}/score", h.Match.UpdateScore)
		r.Put("/matches/{matchID}/lock", h.Match.SetLock)
		r.Post("/matches/{matchID}/events", h.Match.AddEvent)
		r.Delete("/matches/{matchID}", h.Match.Delete)

		r.Post("/teams", h.Team.Create)
		r.Put("/teams/{teamID}", h.Team.Update)
		r.Post("/teams/{teamID}/logo", h.Team.UploadLogo)
		r.Delete("/teams/{teamID}", h.Team.Delete)

		r.Get("/users", h.UserAdmin.List)
		r.Get("/users/{userID}", h.UserAdmin.Get)
		r.Put("/users/{userID}", h.UserAdmin.Update)
		r.Delete("/users/{userID}", h.UserAdmin.Delete)

		r.Get("/stats", h.Dashboard.Stats)
	})
}
