package sync

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type RunDTO struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
	Status        string    `json:"status"`
	TimeGroups    int       `json:"timeGroups"`
	Organizations int       `json:"organizations"`
	Employees     int       `json:"employees"`
	Error         string    `json:"error,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// Sync triggers a catalog refresh. A failed run is reported with 502, the
// recorded run is returned either way.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	log.Debug("Catalog sync requested")
	w.Header().Set("Content-Type", "application/json")

	run, err := h.service.Sync(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(runToDTO(run)); err != nil {
		log.Errorf("Failed to encode sync run: %v", err)
	}
}

func (h *Handler) LastRun(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	run, err := h.service.LastRun(r.Context())
	if errors.Is(err, ErrNoRuns) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(runToDTO(run)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func runToDTO(run Run) RunDTO {
	return RunDTO{
		ID:            run.ID,
		StartedAt:     run.StartedAt,
		FinishedAt:    run.FinishedAt,
		Status:        string(run.Status),
		TimeGroups:    run.TimeGroups,
		Organizations: run.Organizations,
		Employees:     run.Employees,
		Error:         run.Error,
	}
}
