package timesheet

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/SabNK/client-1c-timesheet/pkg/odata"
	"github.com/SabNK/client-1c-timesheet/pkg/onec"
)

type CreateDraftRequest struct {
	// Period is the reporting month in YYYY-MM form.
	Period          string `json:"period"`
	OrganizationRef string `json:"organizationRef"`
	TimeGroupRef    string `json:"timeGroupRef"`
}

type DayDTO struct {
	Day            int     `json:"day"`
	Hours          float64 `json:"hours"`
	TimeGroupRef   string  `json:"timeGroupRef"`
	CarryOverShift bool    `json:"carryOverShift,omitempty"`
}

type LineDTO struct {
	Number      string   `json:"number"`
	EmployeeRef string   `json:"employeeRef"`
	Days        []DayDTO `json:"days"`
}

type DraftDTO struct {
	ID              string     `json:"id"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	Ref             string     `json:"ref,omitempty"`
	Number          string     `json:"number,omitempty"`
	Period          string     `json:"period"`
	OrganizationRef string     `json:"organizationRef"`
	Lines           []LineDTO  `json:"lines"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Building new timesheet draft")
	w.Header().Set("Content-Type", "application/json")

	var req CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	year, month, err := monthOf(req.Period)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft, err := h.service.CreateDraft(r.Context(), BuildInput{
		Year:             year,
		Month:            month,
		Organization:     odata.Ref(req.OrganizationRef),
		DefaultTimeGroup: odata.Ref(req.TimeGroupRef),
	})
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(draftToDTO(draft)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	drafts, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DraftDTO, 0, len(drafts))
	for _, draft := range drafts {
		dtos = append(dtos, draftToDTO(draft))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	draft, err := h.service.Get(r.Context(), mux.Vars(r)["sheetId"])
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(draftToDTO(draft)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sheetId"]
	log.Debugf("Submitting timesheet draft %s", id)
	w.Header().Set("Content-Type", "application/json")

	draft, err := h.service.Submit(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, ErrAlreadySubmitted) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(draftToDTO(draft)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), mux.Vars(r)["sheetId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "timesheet draft not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrOrganizationRequired) ||
		errors.Is(err, ErrTimeGroupRequired) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrNoEntries)
}

func draftToDTO(draft Draft) DraftDTO {
	lines := make([]LineDTO, 0, len(draft.Sheet.Lines))
	for _, line := range draft.Sheet.Lines {
		lines = append(lines, lineToDTO(line))
	}
	return DraftDTO{
		ID:              draft.ID,
		Status:          string(draft.Status),
		CreatedAt:       draft.CreatedAt,
		SubmittedAt:     draft.SubmittedAt,
		Ref:             string(draft.Ref),
		Number:          draft.Number,
		Period:          draft.Sheet.Period.Format("2006-01"),
		OrganizationRef: string(draft.Sheet.Organization),
		Lines:           lines,
	}
}

// lineToDTO keeps only days with recorded hours, the wire format's empty
// day columns are noise for API clients.
func lineToDTO(line onec.TimeSheetLine) LineDTO {
	days := make([]DayDTO, 0)
	for _, record := range line.Records {
		if record.HoursTenths == 0 {
			continue
		}
		days = append(days, DayDTO{
			Day:            record.Day,
			Hours:          record.Hours(),
			TimeGroupRef:   string(record.TimeGroup),
			CarryOverShift: record.CarryOverShift,
		})
	}
	return LineDTO{
		Number:      line.Number,
		EmployeeRef: string(line.Employee),
		Days:        days,
	}
}
