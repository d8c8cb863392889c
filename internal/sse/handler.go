package sse

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/vistalabs/vista/internal/logger"
)

// Handler streams hub events to the caller until it disconnects or the hub
// stops.
//
// @Summary Stream inventory events
// @Description Server-sent events for production runs, restocks and low packaging stock
// @Tags events
// @Produce text/event-stream
// @Param types query string false "Comma-separated event types to receive"
// @Success 200 {string} string "event stream"
// @Failure 400 {string} string "unknown event type"
// @Security ApiKeyAuth
// @Router /api/v1/events [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventTypes, problem := parseTypes(r.URL.Query().Get(QueryParamTypes))
		if problem != "" {
			http.Error(w, problem, http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		log := logger.FromContext(r.Context())
		client := hub.Register(eventTypes)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(event Event) bool {
			msg, err := FormatSSEMessage(event)
			if err != nil {
				log.Error(LogMsgWriteError, "event_type", event.Type, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "event_type", event.Type, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		connected := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload: map[string]interface{}{
				"client_id": client.ID,
				"filters":   eventTypes,
			},
		}
		if !write(connected) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					return
				}
				if !write(event) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

// parseTypes splits the filter param. The returned message is non-empty when
// a type is not one the hub emits.
func parseTypes(param string) ([]string, string) {
	if param == "" {
		return nil, ""
	}
	var types []string
	for _, t := range strings.Split(param, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !slices.Contains(KnownEventTypes, t) {
			return nil, ErrMsgUnknownEventType + ": " + t
		}
		types = append(types, t)
	}
	return types, ""
}
