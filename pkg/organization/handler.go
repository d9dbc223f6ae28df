package organization

import (
	"encoding/json"
	"net/http"
)

type OrganizationDTO struct {
	Ref  string `json:"ref"`
	Name string `json:"name"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	organizations, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]OrganizationDTO, 0, len(organizations))
	for _, org := range organizations {
		dtos = append(dtos, OrganizationDTO{Ref: string(org.Ref), Name: org.Name})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
