package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confcentral/internal/delivery/http/controllers"
	"confcentral/internal/delivery/http/middleware"
	"confcentral/internal/domain"
)

// Controllers groups the controllers wired into the router.
type Controllers struct {
	Auth       *controllers.AuthController
	Profile    *controllers.ProfileController
	Conference *controllers.ConferenceController
	Session    *controllers.SessionController
	Speaker    *controllers.SpeakerController
	Aggregate  *controllers.AggregateController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Profile
	mux.HandleFunc("GET /profile", auth(c.Profile.GetProfile))
	mux.HandleFunc("POST /profile", auth(c.Profile.SaveProfile))

	// Conferences
	mux.HandleFunc("POST /conferences", auth(c.Conference.CreateConference))
	mux.HandleFunc("POST /conferences/query", c.Conference.QueryConferences)
	mux.HandleFunc("GET /conferences/created", auth(c.Conference.ListCreated))
	mux.HandleFunc("GET /conferences/attending", auth(c.Conference.ListAttending))
	mux.HandleFunc("POST /conferences/{conferenceID}/registrations", auth(c.Conference.Register))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/registrations", auth(c.Conference.Unregister))

	// Sessions
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", auth(c.Session.CreateSession))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", c.Session.ListSessions)
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions/most-popular", c.Aggregate.GetMostPopularSession)
	mux.HandleFunc("GET /sessions/{sessionID}/same-day", c.Session.ListSameDay)

	// Wishlist
	mux.HandleFunc("POST /sessions/{sessionID}/wishlist", auth(c.Session.AddToWishlist))
	mux.HandleFunc("DELETE /sessions/{sessionID}/wishlist", auth(c.Session.RemoveFromWishlist))
	mux.HandleFunc("GET /conferences/{conferenceID}/wishlist", auth(c.Session.ListWishlist))

	// Speakers
	mux.HandleFunc("POST /speakers", auth(c.Speaker.AddSpeaker))
	mux.HandleFunc("GET /speakers/{email}", c.Speaker.GetSpeaker)
	mux.HandleFunc("GET /speakers/{email}/sessions", c.Session.ListBySpeaker)

	// Announcements
	mux.HandleFunc("GET /announcement", c.Aggregate.GetAnnouncement)
	mux.HandleFunc("GET /featured-speaker", c.Aggregate.GetFeaturedSpeaker)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
