package httpapi

import (
	"net/http"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"
)

type CreateInviteRequest struct {
	Role          string `json:"role" validate:"required,oneof=ADMIN PROFESSOR"`
	ExpiresInDays *int   `json:"expiresInDays" validate:"omitempty,gt=0"`
}

func (s *Server) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var req CreateInviteRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	role, _ := models.ParseRole(req.Role)
	invite, err := services.CreateInviteCode(s.DB, role, CurrentIdentity(r).UserID, req.ExpiresInDays)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildInviteDTO(invite))
}

func (s *Server) ListInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := services.ListInviteCodes(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]InviteDTO, 0, len(invites))
	for _, invite := range invites {
		items = append(items, buildInviteDTO(invite))
	}
	WriteJSON(w, http.StatusOK, items)
}
