package controllers

import (
	"log/slog"
	"net/http"

	"confcentral/internal/delivery/http/helpers"
	"confcentral/internal/domain"
)

type AggregateController struct {
	Logger  *slog.Logger
	Service domain.AggregateService
}

func NewAggregateController(logger *slog.Logger, svc domain.AggregateService) *AggregateController {
	return &AggregateController{
		Logger:  logger,
		Service: svc,
	}
}

// AnnouncementResponse wraps a cached announcement text, "" when none is set.
type AnnouncementResponse struct {
	Announcement string `json:"announcement"`
}

// GetAnnouncement godoc
// @Summary Return the cached nearly-sold-out announcement
// @Description Returns an empty string when no announcement is cached.
// @Tags announcements
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /announcement [get]
func (c *AggregateController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	text, err := c.Service.Announcement(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{Announcement: text})
}

// GetFeaturedSpeaker godoc
// @Summary Return the cached featured-speaker announcement
// @Description Returns an empty string when no featured speaker is cached.
// @Tags announcements
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /featured-speaker [get]
func (c *AggregateController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	text, err := c.Service.GetFeaturedSpeaker(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{Announcement: text})
}

// GetMostPopularSession godoc
// @Summary Return the conference session with the highest wishlist count
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions/most-popular [get]
func (c *AggregateController) GetMostPopularSession(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	session, err := c.Service.MostPopularSession(r.Context(), conferenceID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}
