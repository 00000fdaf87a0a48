package httpapi

import (
	"net/http"

	"gymcore-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

type UpdateProfessorRequest struct {
	Phone     *string `json:"phone"`
	Specialty *string `json:"specialty"`
}

type CreateProfessorRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=120"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=128"`
	Phone     *string `json:"phone"`
	Specialty *string `json:"specialty"`
}

func (s *Server) CreateProfessor(w http.ResponseWriter, r *http.Request) {
	var req CreateProfessorRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	prof, err := services.CreateProfessor(s.DB, s.Tokens, services.CreateProfessorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ProfessorInput: services.ProfessorInput{
			Phone:     req.Phone,
			Specialty: req.Specialty,
		},
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildProfessorDTO(prof))
}

func (s *Server) ListProfessors(w http.ResponseWriter, r *http.Request) {
	professors, err := services.ListProfessors(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]ProfessorDTO, 0, len(professors))
	for _, prof := range professors {
		items = append(items, buildProfessorDTO(prof))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetProfessor(w http.ResponseWriter, r *http.Request) {
	prof, err := services.GetProfessor(s.DB, chi.URLParam(r, "professorId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildProfessorDTO(prof))
}

func (s *Server) UpdateProfessor(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfessorRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	prof, err := services.UpdateProfessor(s.DB, chi.URLParam(r, "professorId"), services.ProfessorInput{
		Phone:     req.Phone,
		Specialty: req.Specialty,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildProfessorDTO(prof))
}

func (s *Server) DeleteProfessor(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteProfessor(s.DB, chi.URLParam(r, "professorId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
