package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"volunteerhub/internal/delivery/http/controllers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Event         *controllers.EventController
	Profile       *controllers.ProfileController
	Matching      *controllers.MatchingController
	History       *controllers.HistoryController
	Notifications *controllers.NotificationController
	Reports       *controllers.ReportController
}

// NewRouter initializes the HTTP router with all application routes.
// Mutating event routes, matching administration, and reports are gated to
// the admin role; everything else requires only authentication.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleAdmin)(next))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Events
	mux.HandleFunc("GET /events", auth(c.Event.List))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.Get))
	mux.HandleFunc("POST /events", admin(c.Event.Create))
	mux.HandleFunc("PATCH /events/{eventID}", admin(c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", admin(c.Event.Delete))

	// Profile
	mux.HandleFunc("GET /profile", auth(c.Profile.Get))
	mux.HandleFunc("PUT /profile", auth(c.Profile.Put))

	// Matching and signups
	mux.HandleFunc("POST /matching/signups", auth(c.Matching.Signup))
	mux.HandleFunc("DELETE /matching/signups", auth(c.Matching.CancelSignup))
	mux.HandleFunc("GET /matching/events/{eventID}", admin(c.Matching.ListEventSignups))
	mux.HandleFunc("GET /matching/volunteers/{volunteerID}", admin(c.Matching.ListVolunteerSignups))
	mux.HandleFunc("POST /matching/events/{eventID}/auto-match", admin(c.Matching.AutoMatch))
	mux.HandleFunc("POST /matching/events/{eventID}/assign", admin(c.Matching.Assign))

	// Participation history
	mux.HandleFunc("POST /history/events/{eventID}/participation", auth(c.History.Participate))
	mux.HandleFunc("PUT /history/events/{eventID}/status", auth(c.History.UpdateStatus))
	mux.HandleFunc("GET /history/me", auth(c.History.Me))
	mux.HandleFunc("GET /history/stats", auth(c.History.MyStats))
	mux.HandleFunc("GET /history/stats/{userID}", admin(c.History.StatsFor))
	mux.HandleFunc("GET /history", admin(c.History.ListAll))

	// Notifications
	mux.HandleFunc("GET /notifications", auth(c.Notifications.List))
	mux.HandleFunc("PUT /notifications/{notificationID}/read", auth(c.Notifications.MarkRead))
	mux.HandleFunc("DELETE /notifications/{notificationID}", auth(c.Notifications.Delete))

	// Reports
	mux.HandleFunc("GET /reports/volunteer-history", admin(c.Reports.VolunteerHistory))
	mux.HandleFunc("GET /reports/event-assignments", admin(c.Reports.EventAssignments))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
