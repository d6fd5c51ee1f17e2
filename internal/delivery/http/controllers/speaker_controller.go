package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"confcentral/internal/delivery/http/helpers"
	"confcentral/internal/delivery/http/middleware"
	"confcentral/internal/domain"
)

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// AddSpeakerRequest is the request body for POST /speakers.
type AddSpeakerRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Workplace      string `json:"workplace"`
}

// Validate implements helpers.Validator.
func (a *AddSpeakerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// AddSpeaker godoc
// @Summary Register or update a speaker
// @Description Speakers are keyed by email; posting an existing email replaces the record.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.AddSpeakerRequest true "Speaker fields"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /speakers [post]
func (c *SpeakerController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req AddSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.Add(r.Context(), identity, &domain.Speaker{
		Email:          req.Email,
		Name:           req.Name,
		Specialization: req.Specialization,
		Workplace:      req.Workplace,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// GetSpeaker godoc
// @Summary Get a speaker by email
// @Tags speakers
// @Produce json
// @Param email path string true "Speaker email"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /speakers/{email} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	speaker, err := c.Service.Get(r.Context(), email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}
