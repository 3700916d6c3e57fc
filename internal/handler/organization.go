// internal/handler/organization.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/konnethq/konnet/internal/middleware"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/service"
)

type OrganizationHandler struct {
	orgService *service.OrganizationService
}

func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.orgService.List(r.Context(), r.URL.Query())
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithList(w, result)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "organizationID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	// An organization may only read itself; admins may read any.
	if !callerMayAccessOrganization(r, id) {
		respondWithError(w, http.StatusForbidden, "You are not authorized to access this route")
		return
	}

	org, err := h.orgService.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "organizationID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	if !callerMayAccessOrganization(r, id) {
		respondWithError(w, http.StatusForbidden, "You are not authorized to access this route")
		return
	}

	var input service.UpdateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.Update(r.Context(), id, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "organizationID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return
	}

	if err := h.orgService.Delete(r.Context(), id); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, struct{}{})
}

// callerMayAccessOrganization enforces tenant isolation for routes shared
// between admins and organizations: an organization principal is confined
// to its own record.
func callerMayAccessOrganization(r *http.Request, orgID uuid.UUID) bool {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return false
	}
	if principal.PrincipalRole() == model.RoleOrganization {
		return principal.PrincipalID() == orgID
	}
	return true
}
