package httpapi

import (
	"net/http"

	"gymcore-backend-go/internal/models"
	"gymcore-backend-go/internal/services"
)

type RegisterRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=120"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8,max=128"`
	Role       string  `json:"role" validate:"omitempty,oneof=ADMIN PROFESSOR STUDENT"`
	InviteCode string  `json:"inviteCode"`
	Phone      *string `json:"phone"`
	Specialty  *string `json:"specialty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token     string  `json:"token"`
	ExpiresAt int64   `json:"expiresAt"`
	User      UserDTO `json:"user"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	role := models.RoleStudent
	if req.Role != "" {
		role, _ = models.ParseRole(req.Role)
	}
	user, err := services.Register(s.DB, s.Tokens, services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       role,
		InviteCode: req.InviteCode,
		Phone:      req.Phone,
		Specialty:  req.Specialty,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildUserDTO(user))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeValid(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, token, exp, err := services.Login(s.DB, s.Tokens, req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      buildUserDTO(user),
	})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	user, err := services.GetUser(s.DB, identity.UserID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildUserDTO(user))
}
