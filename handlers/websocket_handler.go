package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/d-exit/team-management-appV5-sub000/realtime"
	"github.com/d-exit/team-management-appV5-sub000/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub                *realtime.Hub
	competitionService services.CompetitionService
}

func NewWebSocketHandler(hub *realtime.Hub, cs services.CompetitionService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, competitionService: cs}
}

// Subscribe upgrades the connection and joins the competition's room, where
// schedule and result updates are pushed. GET /ws/competitions/{competitionID}
func (h *WebSocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	competitionID, err := urlParam(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.competitionService.GetCompetition(r.Context(), competitionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &realtime.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: competitionID,
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
