// internal/handler/member.go
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

const maxAvatarBytes = 1 << 20 // 1MB

type MemberHandler struct {
	memberService *service.MemberService
}

func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.scopedOrganization(w, r)
	if !ok {
		return
	}

	result, err := h.memberService.List(r.Context(), orgID, r.URL.Query())
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithList(w, result)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.scopedOrganization(w, r)
	if !ok {
		return
	}

	var input service.CreateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.memberService.Create(r.Context(), orgID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusCreated, output.Member)
}

func (h *MemberHandler) Import(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.scopedOrganization(w, r)
	if !ok {
		return
	}

	var items []service.CreateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	report, err := h.memberService.BulkImport(r.Context(), orgID, items)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, report)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.scopedOrganization(w, r)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid member id")
		return
	}

	member, err := h.memberService.GetInOrganization(r.Context(), memberID, orgID)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, member)
}

// Delete removes a member from one organization, named by the
// organizationId query parameter. Organization principals are confined to
// their own id. The member record itself survives while it still belongs
// to other organizations.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	memberID, err := uuid.Parse(chi.URLParam(r, "memberID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid member id")
		return
	}

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return
	}

	var orgID uuid.UUID
	if raw := r.URL.Query().Get("organizationId"); raw != "" {
		orgID, err = uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid organization id")
			return
		}
		if principal.PrincipalRole() == model.RoleOrganization && principal.PrincipalID() != orgID {
			respondWithError(w, http.StatusForbidden, "You are not authorized to access this route")
			return
		}
	} else if principal.PrincipalRole() == model.RoleOrganization {
		orgID = principal.PrincipalID()
	} else {
		respondWithError(w, http.StatusBadRequest, "Please provide an organizationId")
		return
	}

	if err := h.memberService.RemoveFromOrganization(r.Context(), memberID, orgID); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, struct{}{})
}

// Me returns the authenticated member's own record.
func (h *MemberHandler) Me(w http.ResponseWriter, r *http.Request) {
	member, ok := callerMember(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return
	}

	respondWithData(w, http.StatusOK, member)
}

func (h *MemberHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	member, ok := callerMember(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return
	}

	var input service.UpdateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := h.memberService.UpdateDetails(r.Context(), member.ID, input)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, updated)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *MemberHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	member, ok := callerMember(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return
	}

	var input updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.memberService.UpdatePassword(r.Context(), member.ID, input.CurrentPassword, input.NewPassword); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, struct{}{})
}

func (h *MemberHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	member, ok := callerMember(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Please upload a file less than 1MB")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	url, err := h.memberService.SetAvatar(r.Context(), member.ID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, url)
}

func (h *MemberHandler) Search(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return
	}

	var explicitOrg *uuid.UUID
	if raw := r.URL.Query().Get("organizationId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid organization id")
			return
		}
		explicitOrg = &id
	}

	result, err := h.memberService.Search(r.Context(), principal, explicitOrg, r.URL.Query().Get("term"), r.URL.Query())
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithList(w, result)
}

type messageRequest struct {
	MemberID uuid.UUID `json:"member_id"`
	Body     string    `json:"body"`
}

func (h *MemberHandler) MessageMember(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.messagingOrganization(w, r)
	if !ok {
		return
	}

	var input messageRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Body == "" {
		respondWithError(w, http.StatusBadRequest, "Please provide a message body")
		return
	}
	defer r.Body.Close()

	if err := h.memberService.MessageMember(r.Context(), orgID, input.MemberID, input.Body); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, "Message sent")
}

func (h *MemberHandler) MessageMembers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.messagingOrganization(w, r)
	if !ok {
		return
	}

	var input messageRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Body == "" {
		respondWithError(w, http.StatusBadRequest, "Please provide a message body")
		return
	}
	defer r.Body.Close()

	if err := h.memberService.MessageMembers(r.Context(), orgID, input.Body); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, "Messages sent")
}

// Sweep re-runs the orphan reap: members whose membership set is empty
// are deleted. Safe to call any number of times.
func (h *MemberHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	reaped, err := h.memberService.ReapOrphans(r.Context())
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	respondWithData(w, http.StatusOK, map[string]int64{"reaped": reaped})
}

// scopedOrganization resolves the organization id from the URL and checks
// that an organization principal is operating on itself.
func (h *MemberHandler) scopedOrganization(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orgID, err := uuid.Parse(chi.URLParam(r, "organizationID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return uuid.Nil, false
	}

	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return uuid.Nil, false
	}

	switch p := principal.(type) {
	case *model.Organization:
		if p.ID != orgID {
			respondWithError(w, http.StatusForbidden, "You are not authorized to access this route")
			return uuid.Nil, false
		}
	case *model.Member:
		if !p.Memberships.Contains(orgID) {
			respondWithError(w, http.StatusForbidden, "You are not authorized to access this route")
			return uuid.Nil, false
		}
	}

	return orgID, true
}

// messagingOrganization resolves which organization a messaging call acts
// for: an organization acts for itself, an admin names one via query param.
func (h *MemberHandler) messagingOrganization(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "You are not authorized to access this route")
		return uuid.Nil, false
	}

	if principal.PrincipalRole() == model.RoleOrganization {
		return principal.PrincipalID(), true
	}

	raw := r.URL.Query().Get("organizationId")
	orgID, err := uuid.Parse(raw)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Please provide an organizationId")
		return uuid.Nil, false
	}
	return orgID, true
}

func callerMember(r *http.Request) (*model.Member, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return nil, false
	}
	member, ok := principal.(*model.Member)
	return member, ok
}
