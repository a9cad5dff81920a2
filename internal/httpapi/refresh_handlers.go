package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"

	"bds-pipeline/internal/pipeline"
)

type RefreshHandler struct {
	Status func() pipeline.Status
	Run    func(ctx context.Context) (pipeline.RowCounts, error)
}

func (h RefreshHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Status())
}

// RunNow kicks a pipeline run in the background; the caller watches /events
// or polls /refresh/status for the outcome.
func (h RefreshHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	if h.Status().Running {
		WriteJSON(w, http.StatusConflict, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	go func() {
		if _, err := h.Run(context.Background()); err != nil {
			if errors.Is(err, pipeline.ErrRunInProgress) {
				return
			}
			log.Printf("[refresh] run error: %v", err)
		}
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}
