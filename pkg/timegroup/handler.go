package timegroup

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type TimeGroupDTO struct {
	Ref    string `json:"ref"`
	Name   string `json:"name"`
	Letter string `json:"letter,omitempty"`
	Digit  string `json:"digit,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing cached time groups")
	w.Header().Set("Content-Type", "application/json")

	timeGroups, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TimeGroupDTO, 0, len(timeGroups))
	for _, timeGroup := range timeGroups {
		dtos = append(dtos, TimeGroupDTO{
			Ref:    string(timeGroup.Ref),
			Name:   timeGroup.Name,
			Letter: timeGroup.Letter,
			Digit:  timeGroup.Digit,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
