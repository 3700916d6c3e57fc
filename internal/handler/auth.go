// internal/handler/auth.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/service"
)

type AuthHandler struct {
	authService  *service.AuthService
	resetService *service.PasswordResetService
}

func NewAuthHandler(authService *service.AuthService, resetService *service.PasswordResetService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		resetService: resetService,
	}
}

func (h *AuthHandler) RegisterOrganization(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.RegisterOrganization(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusCreated, output)
}

func (h *AuthHandler) LoginOrganization(w http.ResponseWriter, r *http.Request) {
	var input service.LoginOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.LoginOrganization(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, output)
}

func (h *AuthHandler) LoginMember(w http.ResponseWriter, r *http.Request) {
	var input service.LoginMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.LoginMember(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, output)
}

func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterAdminInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.RegisterAdmin(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusCreated, output)
}

func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var input service.LoginAdminInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.LoginAdmin(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, output)
}

// Logout exists for client symmetry only. Tokens carry no server-side
// session; discarding the stored token is the logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) forgotPassword(kind model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input forgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
			respondWithError(w, http.StatusBadRequest, "Please provide an email address")
			return
		}
		defer r.Body.Close()

		if err := h.resetService.RequestReset(r.Context(), kind, input.Email); err != nil {
			respondWithDomainError(w, r, err)
			return
		}

		respondWithData(w, http.StatusOK, "Email sent")
	}
}

func (h *AuthHandler) resetPassword(kind model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		defer r.Body.Close()

		output, err := h.resetService.ConsumeReset(r.Context(), kind, chi.URLParam(r, "resettoken"), input.Password)
		if err != nil {
			respondWithDomainError(w, r, err)
			return
		}

		respondWithData(w, http.StatusOK, output)
	}
}

func (h *AuthHandler) OrganizationForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.forgotPassword(model.RoleOrganization)(w, r)
}

func (h *AuthHandler) OrganizationResetPassword(w http.ResponseWriter, r *http.Request) {
	h.resetPassword(model.RoleOrganization)(w, r)
}

func (h *AuthHandler) MemberForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.forgotPassword(model.RoleMember)(w, r)
}

func (h *AuthHandler) MemberResetPassword(w http.ResponseWriter, r *http.Request) {
	h.resetPassword(model.RoleMember)(w, r)
}
