package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/handler"
	"github.com/konnethq/konnet/internal/middleware"
	"github.com/konnethq/konnet/internal/mocks"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/service"
)

// memberRouter mounts the handler under the production route shape so
// chi URL params resolve the same way they do in the server.
func memberRouter(h *handler.MemberHandler, principal model.Principal) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithPrincipal(req.Context(), principal)))
		})
	})
	r.Post("/api/v1/organizations/{organizationID}/members", h.Create)
	r.Delete("/api/v1/members/{memberID}", h.Delete)
	return r
}

func TestCreateMemberHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	org := &model.Organization{ID: orgID, Role: model.RoleOrganization}

	payload := `{"first_name":"Ada","last_name":"Obi","phone":"+2348012345678"}`

	newHandler := func(memberRepo *mocks.MockMemberRepositoryIface, orgRepo *mocks.MockOrganizationRepositoryIface) *handler.MemberHandler {
		svc := service.NewMemberService(memberRepo, orgRepo, auth.NewPasswordHasher(), nil, nil)
		return handler.NewMemberHandler(svc)
	}

	t.Run("organization creates its own member", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)
		memberRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.Member) error {
				m.ID = uuid.New()
				return nil
			})

		router := memberRouter(newHandler(memberRepo, orgRepo), org)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/organizations/"+orgID.String()+"/members", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
	})

	t.Run("already linked member is a 409", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		existing := &model.Member{ID: uuid.New(), Phone: "+2348012345678", Memberships: model.UUIDArray{orgID}}
		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)
		memberRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateKey)
		memberRepo.EXPECT().FindByPhone(gomock.Any(), existing.Phone).Return(existing, nil)

		router := memberRouter(newHandler(memberRepo, orgRepo), org)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/organizations/"+orgID.String()+"/members", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("organization cannot create under a foreign organization", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		router := memberRouter(newHandler(memberRepo, orgRepo), org)

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/organizations/"+uuid.NewString()+"/members", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin may create under any organization", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(org, nil)
		memberRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.Member) error {
				m.ID = uuid.New()
				return nil
			})

		router := memberRouter(newHandler(memberRepo, orgRepo), &model.Admin{ID: uuid.New(), Role: model.RoleAdmin})

		req := httptest.NewRequest(http.MethodPost,
			"/api/v1/organizations/"+orgID.String()+"/members", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestDeleteMemberHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgID := uuid.New()
	memberID := uuid.New()
	org := &model.Organization{ID: orgID, Role: model.RoleOrganization}

	newHandler := func(memberRepo *mocks.MockMemberRepositoryIface, orgRepo *mocks.MockOrganizationRepositoryIface) *handler.MemberHandler {
		svc := service.NewMemberService(memberRepo, orgRepo, auth.NewPasswordHasher(), nil, nil)
		return handler.NewMemberHandler(svc)
	}

	t.Run("organization removes its own member", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		remaining := &model.Member{ID: memberID, Memberships: model.UUIDArray{uuid.New()}}
		memberRepo.EXPECT().RemoveMembership(gomock.Any(), memberID, orgID).Return(remaining, nil)

		router := memberRouter(newHandler(memberRepo, orgRepo), org)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/members/"+memberID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("organization cannot target a foreign organization", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		router := memberRouter(newHandler(memberRepo, orgRepo), org)

		req := httptest.NewRequest(http.MethodDelete,
			"/api/v1/members/"+memberID.String()+"?organizationId="+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin must name the organization", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		router := memberRouter(newHandler(memberRepo, orgRepo), &model.Admin{ID: uuid.New(), Role: model.RoleAdmin})

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/members/"+memberID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown membership is a 404", func(t *testing.T) {
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		memberRepo.EXPECT().RemoveMembership(gomock.Any(), memberID, orgID).Return(nil, domain.ErrMemberNotFound)

		router := memberRouter(newHandler(memberRepo, orgRepo), org)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/members/"+memberID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
