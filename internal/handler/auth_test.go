package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/handler"
	"github.com/konnethq/konnet/internal/mocks"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/service"
)

func newAuthHandler(
	orgRepo *mocks.MockOrganizationRepositoryIface,
	memberRepo *mocks.MockMemberRepositoryIface,
	adminRepo *mocks.MockAdminRepositoryIface,
	hasher *auth.PasswordHasher,
) *handler.AuthHandler {
	authSvc := service.NewAuthService(orgRepo, memberRepo, adminRepo, hasher, auth.NewTokenManager("test_secret", time.Hour))
	return handler.NewAuthHandler(authSvc, nil)
}

func TestLoginOrganizationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()
	hash, _ := hasher.Hash("correct-pass")
	org := &model.Organization{ID: uuid.New(), Username: "konnethq", PasswordHash: hash}

	t.Run("success envelope carries the token", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByUsername(gomock.Any(), "konnethq").Return(org, nil)

		h := newAuthHandler(orgRepo, memberRepo, adminRepo, hasher)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/organizations/login",
			strings.NewReader(`{"username":"konnethq","password":"correct-pass"}`))
		rec := httptest.NewRecorder()
		h.LoginOrganization(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.NotEmpty(t, body.Data.Token)
	})

	t.Run("bad credentials are a uniform 401", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByUsername(gomock.Any(), "konnethq").Return(nil, domain.ErrOrganizationNotFound)

		h := newAuthHandler(orgRepo, memberRepo, adminRepo, hasher)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/organizations/login",
			strings.NewReader(`{"username":"konnethq","password":"whatever"}`))
		rec := httptest.NewRecorder()
		h.LoginOrganization(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("missing fields are a 400", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		h := newAuthHandler(orgRepo, memberRepo, adminRepo, hasher)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/organizations/login",
			strings.NewReader(`{"username":"konnethq"}`))
		rec := httptest.NewRecorder()
		h.LoginOrganization(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed payload is a 400", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		h := newAuthHandler(orgRepo, memberRepo, adminRepo, hasher)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/organizations/login",
			strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		h.LoginOrganization(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegisterOrganizationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()

	payload := `{
		"name": "Konnet HQ",
		"username": "konnethq",
		"email": "hq@konnet.example",
		"address": "1 Marina Road",
		"state": "Lagos",
		"city": "Lagos",
		"country": "Nigeria",
		"password": "s3cret-pass"
	}`

	t.Run("created with 201", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		h := newAuthHandler(orgRepo, memberRepo, adminRepo, hasher)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/organizations/register", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.RegisterOrganization(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate registration is a 400", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateKey)

		h := newAuthHandler(orgRepo, memberRepo, adminRepo, hasher)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/organizations/register", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.RegisterOrganization(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	h := handler.NewAuthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
