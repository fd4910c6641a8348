package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-console/internal/telemetry"
)

// StreamEventsHandler godoc
// @Summary Server-Sent Events stream of collection snapshots
// @Description The current snapshot is sent on connect and again after every change. Streams: products, suppliers, notifications.
// @Tags events
// @Produce text/event-stream
// @Param stream path string true "Stream name"
// @Success 200 {string} string "event stream"
// @Failure 404 {string} string "Unknown stream"
// @Router /events/{stream} [get]
// @Security BearerAuth
func StreamEventsHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "stream")
	src, ok := stream(name)
	if !ok {
		http.Error(w, "unknown stream", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	updates, cancel := src.SubscribeAny()
	defer cancel()

	subscribers := telemetry.StreamSubscribers.WithLabelValues(name)
	subscribers.Inc()
	defer subscribers.Dec()

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, open := <-updates:
			if !open {
				return
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				log.Printf("could not encode %s snapshot: %v", name, err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
