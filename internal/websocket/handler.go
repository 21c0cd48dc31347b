package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/venuecal/venuecal/internal/rest"
	"github.com/venuecal/venuecal/pkg/venue"
)

type Handler struct {
	hub            *Hub
	allowedOrigins []string
}

func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{hub: hub, allowedOrigins: allowedOrigins}
}

// Connect godoc
// @Summary Live refresh notifications
// @Description Upgrades to a websocket receiving a message after every change in the venue
// @Tags Live
// @Router /api/ws [get]
// @Security XVenueCode
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	venueId, err := venue.CurrentId(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	conn, err := ws.Accept(w, r, &ws.AcceptOptions{
		OriginPatterns: h.allowedOrigins,
	})
	if err != nil {
		log.Errorf("websocket accept failed: %v", err)
		return
	}
	log.Debugf("websocket client connected to venue %d", venueId)

	NewClient(h.hub, conn, venueId).Run(r.Context())
}
