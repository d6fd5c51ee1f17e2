package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"confcentral/internal/delivery/http/helpers"
	"confcentral/internal/delivery/http/middleware"
	"confcentral/internal/domain"
)

type SessionController struct {
	Logger   *slog.Logger
	Sessions domain.SessionService
	Wishlist domain.WishlistService
}

func NewSessionController(logger *slog.Logger, sessions domain.SessionService, wishlist domain.WishlistService) *SessionController {
	return &SessionController{
		Logger:   logger,
		Sessions: sessions,
		Wishlist: wishlist,
	}
}

// CreateSessionRequest is the request body for POST /conferences/{conferenceID}/sessions.
type CreateSessionRequest struct {
	Name          string `json:"name"`
	TypeOfSession string `json:"type_of_session"`
	Highlights    string `json:"highlights"`
	Duration      string `json:"duration"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	SpeakerEmail  string `json:"speaker_email"`
}

// Validate implements helpers.Validator.
func (s *CreateSessionRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.SpeakerEmail) == "" {
		errs = append(errs, "speaker_email is required")
	}
	return errs
}

// CreateSession godoc
// @Summary Create a session under a conference
// @Description Only the conference organizer may create sessions. The named speaker must already be registered.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Param body body controllers.CreateSessionRequest true "Session fields"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conferenceID := r.PathValue("conferenceID")
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	session, err := c.Sessions.Create(r.Context(), identity, conferenceID, domain.CreateSessionInput{
		Name:          req.Name,
		TypeOfSession: req.TypeOfSession,
		Highlights:    req.Highlights,
		Duration:      req.Duration,
		Date:          req.Date,
		StartTime:     req.StartTime,
		SpeakerEmail:  req.SpeakerEmail,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// ListSessions godoc
// @Summary List a conference's sessions
// @Description With the type query parameter set, only sessions of that type are returned.
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Param type query string false "Session type filter"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions [get]
func (c *SessionController) ListSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	typeOfSession := r.URL.Query().Get("type")

	var (
		sessions []*domain.Session
		err      error
	)
	if typeOfSession != "" {
		sessions, err = c.Sessions.ListByType(r.Context(), conferenceID, typeOfSession)
	} else {
		sessions, err = c.Sessions.ListByConference(r.Context(), conferenceID)
	}
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ListBySpeaker godoc
// @Summary List all sessions given by a speaker, across conferences
// @Tags sessions
// @Produce json
// @Param email path string true "Speaker email"
// @Success 200 {object} helpers.APIResponse
// @Router /speakers/{email}/sessions [get]
func (c *SessionController) ListBySpeaker(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	sessions, err := c.Sessions.ListBySpeaker(r.Context(), email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ListSameDay godoc
// @Summary List the other sessions held the same day in the same conference
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /sessions/{sessionID}/same-day [get]
func (c *SessionController) ListSameDay(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	sessions, err := c.Sessions.ListSameDay(r.Context(), sessionID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// WishlistedResponse reports whether a wishlist mutation took place.
type WishlistedResponse struct {
	Wishlisted bool `json:"wishlisted"`
}

// AddToWishlist godoc
// @Summary Add a session to the caller's wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 201 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/wishlist [post]
func (c *SessionController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessionID := r.PathValue("sessionID")
	added, err := c.Wishlist.Add(r.Context(), identity, sessionID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, WishlistedResponse{Wishlisted: added})
}

// RemoveFromWishlist godoc
// @Summary Remove a session from the caller's wishlist
// @Description Idempotent: wishlisted=false when the session was not in the wishlist.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions/{sessionID}/wishlist [delete]
func (c *SessionController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessionID := r.PathValue("sessionID")
	removed, err := c.Wishlist.Remove(r.Context(), identity, sessionID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WishlistedResponse{Wishlisted: removed})
}

// ListWishlist godoc
// @Summary List the caller's wishlisted sessions for a conference
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences/{conferenceID}/wishlist [get]
func (c *SessionController) ListWishlist(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conferenceID := r.PathValue("conferenceID")
	sessions, err := c.Wishlist.List(r.Context(), identity, conferenceID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
