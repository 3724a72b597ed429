package httpserver

import (
	"net/http"
	"time"

	"church-hub-go/internal/config"
	"church-hub-go/internal/transport/httpserver/handler"
	authmw "church-hub-go/internal/transport/httpserver/middleware"
	"church-hub-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORS))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewIdentityAuth(cfg.Auth, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Me)

			r.Post("/churches", handlers.CreateChurch)
			r.Get("/churches/search", handlers.SearchChurches)
			r.Post("/churches/leave", handlers.LeaveChurch)
			r.Get("/churches/{churchID}", handlers.GetChurch)
			r.Patch("/churches/{churchID}", handlers.UpdateChurch)
			r.Put("/churches/{churchID}/visibility", handlers.SetVisibility)
			r.Delete("/churches/{churchID}", handlers.DeleteChurch)
			r.Post("/churches/{churchID}/transfer-ownership", handlers.TransferOwnership)
			r.Get("/churches/{churchID}/analytics", handlers.ChurchAnalytics)

			r.Get("/churches/{churchID}/campuses", handlers.ListCampuses)
			r.Post("/churches/{churchID}/campuses", handlers.CreateCampus)
			r.Put("/churches/campuses/{campusID}", handlers.UpdateCampus)
			r.Delete("/churches/campuses/{campusID}", handlers.DeleteCampus)

			r.Get("/churches/{churchID}/members", handlers.ListMembers)
			r.Put("/churches/members/{memberID}/role", handlers.ChangeMemberRole)
			r.Put("/churches/members/{memberID}/campus", handlers.AssignMemberCampus)
			r.Delete("/churches/members/{memberID}", handlers.RemoveMember)

			r.Get("/churches/{churchID}/questionnaire", handlers.ListQuestions)
			r.Get("/churches/{churchID}/questionnaire/public", handlers.PublicQuestions)
			r.Post("/churches/{churchID}/questionnaire", handlers.CreateQuestion)
			r.Put("/churches/questionnaire/{questionID}", handlers.UpdateQuestion)
			r.Put("/churches/questionnaire/{questionID}/toggle", handlers.ToggleQuestion)
			r.Delete("/churches/questionnaire/{questionID}", handlers.DeleteQuestion)

			r.Get("/churches/{churchID}/roster/{kind}", handlers.ListRoster)
			r.Post("/churches/{churchID}/roster/{kind}", handlers.CreateRosterEntry)
			r.Put("/churches/roster/{entryID}", handlers.UpdateRosterEntry)
			r.Put("/churches/roster/{entryID}/toggle", handlers.ToggleRosterEntry)
			r.Delete("/churches/roster/{entryID}", handlers.DeleteRosterEntry)

			r.Post("/invites/generate", handlers.GenerateInvite)
			r.Get("/invites", handlers.ListInvites)
			r.Put("/invites/{inviteID}/deactivate", handlers.DeactivateInvite)
			r.Post("/invites/join", handlers.RedeemInvite)

			r.Post("/join-requests", handlers.CreateJoinRequest)
			r.Get("/join-requests", handlers.ListJoinRequests)
			r.Post("/join-requests/{requestID}/approve", handlers.ApproveJoinRequest)
			r.Post("/join-requests/{requestID}/deny", handlers.DenyJoinRequest)
			r.Delete("/join-requests/{requestID}", handlers.CancelJoinRequest)
		})
	})

	return r
}
