package httpapi

import (
	"net/http"
	"time"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type HistoryRequest struct {
	WeightKg     *float64 `json:"weightKg" validate:"omitempty,gt=0"`
	HeightCm     *float64 `json:"heightCm" validate:"omitempty,gt=0"`
	WaistCm      *float64 `json:"waistCm" validate:"omitempty,gt=0"`
	HipCm        *float64 `json:"hipCm" validate:"omitempty,gt=0"`
	NeckCm       *float64 `json:"neckCm" validate:"omitempty,gt=0"`
	LeftArmCm    *float64 `json:"leftArmCm" validate:"omitempty,gt=0"`
	RightArmCm   *float64 `json:"rightArmCm" validate:"omitempty,gt=0"`
	LeftLegCm    *float64 `json:"leftLegCm" validate:"omitempty,gt=0"`
	RightLegCm   *float64 `json:"rightLegCm" validate:"omitempty,gt=0"`
	BodyFatPct   *float64 `json:"bodyFatPct" validate:"omitempty,gte=0,lte=100"`
	MuscleMassKg *float64 `json:"muscleMassKg" validate:"omitempty,gt=0"`
	Notes        *string  `json:"notes"`
	RecordedAt   *string  `json:"recordedAt"`
}

func (req HistoryRequest) toInput() (services.HistoryInput, error) {
	input := services.HistoryInput{
		WeightKg:     req.WeightKg,
		HeightCm:     req.HeightCm,
		WaistCm:      req.WaistCm,
		HipCm:        req.HipCm,
		NeckCm:       req.NeckCm,
		LeftArmCm:    req.LeftArmCm,
		RightArmCm:   req.RightArmCm,
		LeftLegCm:    req.LeftLegCm,
		RightLegCm:   req.RightLegCm,
		BodyFatPct:   req.BodyFatPct,
		MuscleMassKg: req.MuscleMassKg,
		Notes:        req.Notes,
	}
	if req.RecordedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.RecordedAt)
		if err != nil {
			return services.HistoryInput{}, services.ErrBadRequest("Field \"recordedAt\" must be an RFC 3339 timestamp")
		}
		input.RecordedAt = &parsed
	}
	return input, nil
}

// loadHistory resolves a history record through its student, 404 before the
// access check.
func (s *Server) loadHistory(r *http.Request, action services.Action) (models.HistoryRecord, services.Caller, error) {
	caller, err := s.caller(r)
	if err != nil {
		return models.HistoryRecord{}, services.Caller{}, err
	}
	rec, err := services.GetHistoryRecord(s.DB, chi.URLParam(r, "recordId"))
	if err != nil {
		return models.HistoryRecord{}, services.Caller{}, err
	}
	st, err := services.GetStudent(s.DB, rec.StudentID)
	if err != nil {
		return models.HistoryRecord{}, services.Caller{}, err
	}
	if err := services.Authorize(caller, action, services.StudentResource(services.KindHistory, st)); err != nil {
		return models.HistoryRecord{}, services.Caller{}, err
	}
	return rec, caller, nil
}

func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadStudent(r, services.KindHistory, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	filters := services.HistoryFilters{
		Limit: parseInt(r.URL.Query().Get("limit"), 0),
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Query param \"from\" must be an RFC 3339 timestamp")
			return
		}
		filters.From = &parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Query param \"to\" must be an RFC 3339 timestamp")
			return
		}
		filters.To = &parsed
	}
	records, err := services.ListHistory(s.DB, st.ID, filters)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildHistoryDTOs(records))
}

func (s *Server) LatestHistory(w http.ResponseWriter, r *http.Request) {
	st, _, err := s.loadStudent(r, services.KindHistory, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rec, err := services.LatestHistory(s.DB, st.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildHistoryDTO(rec))
}

func (s *Server) CreateHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	st, caller, err := s.loadStudent(r, services.KindHistory, services.ActionCreate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rec, err := services.CreateHistoryRecord(s.DB, st.ID, caller.UserID, input)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildHistoryDTO(rec))
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	rec, _, err := s.loadHistory(r, services.ActionRead)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildHistoryDTO(rec))
}

func (s *Server) UpdateHistory(w http.ResponseWriter, r *http.Request) {
	var req HistoryRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	rec, _, err := s.loadHistory(r, services.ActionUpdate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	updated, err := services.UpdateHistoryRecord(s.DB, rec.ID, input)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildHistoryDTO(updated))
}

func (s *Server) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	rec, _, err := s.loadHistory(r, services.ActionDelete)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := services.DeleteHistoryRecord(s.DB, rec.ID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
