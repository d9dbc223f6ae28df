package employee

import (
	"encoding/json"
	"net/http"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
)

type EmployeeDTO struct {
	Ref          string `json:"ref"`
	Name         string `json:"name"`
	PersonRef    string `json:"personRef"`
	Organization string `json:"organizationRef"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var employees []Employee
	var err error
	if organization := r.URL.Query().Get("organization"); organization != "" {
		employees, err = h.service.ListByOrganization(r.Context(), odata.Ref(organization))
	} else {
		employees, err = h.service.List(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		dtos = append(dtos, EmployeeDTO{
			Ref:          string(employee.Ref),
			Name:         employee.Name,
			PersonRef:    string(employee.Person),
			Organization: string(employee.Organization),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
