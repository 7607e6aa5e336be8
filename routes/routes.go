package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rallypoint-app/rallypoint/handlers"
	"github.com/rallypoint-app/rallypoint/middleware"
	"github.com/rallypoint-app/rallypoint/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	registrationHandler *handlers.RegistrationHandler,
	matchHandler *handlers.MatchHandler,
	ratingHandler *handlers.RatingHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticator(jwtSecret)
	organizerOnly := middleware.Authorize(models.RoleOrganizer)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", authHandler.Me)
			r.Put("/me/avatar", authHandler.UploadAvatar)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Public browse endpoints.
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.GetByID)
		r.Get("/{tournamentID}/overview", tournamentHandler.Overview)
		r.Get("/{tournamentID}/registrations", registrationHandler.List)
		r.Get("/{tournamentID}/matches", matchHandler.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/{tournamentID}/registrations", registrationHandler.Register)

			r.Group(func(r chi.Router) {
				r.Use(organizerOnly)

				r.Post("/", tournamentHandler.Create)
				r.Patch("/{tournamentID}", tournamentHandler.Update)
				r.Post("/{tournamentID}/cancel", tournamentHandler.Cancel)
				r.Post("/{tournamentID}/phase", tournamentHandler.AdvancePhase)
				r.Get("/{tournamentID}/teams/preview", tournamentHandler.PreviewTeams)
				r.Put("/{tournamentID}/logo", tournamentHandler.UploadLogo)
				r.Post("/{tournamentID}/pool-matches", matchHandler.SchedulePoolMatch)
				r.Post("/{tournamentID}/slots/{slotID}/match", matchHandler.ScheduleBracketMatch)
			})
		})
	})

	router.Route("/registrations", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/{registrationID}/withdraw", registrationHandler.Withdraw)
		r.Patch("/{registrationID}", registrationHandler.SetStatus)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByID)
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/{matchID}/result", matchHandler.RecordResult)
		})
	})

	router.Get("/players/{userID}/rating", ratingHandler.GetPlayerRating)

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWS)
}
