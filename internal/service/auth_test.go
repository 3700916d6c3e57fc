package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/mocks"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/service"
)

func newAuthService(
	orgRepo *mocks.MockOrganizationRepositoryIface,
	memberRepo *mocks.MockMemberRepositoryIface,
	adminRepo *mocks.MockAdminRepositoryIface,
	hasher *auth.PasswordHasher,
) *service.AuthService {
	return service.NewAuthService(orgRepo, memberRepo, adminRepo, hasher, auth.NewTokenManager("test_secret", time.Hour))
}

func TestRegisterOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()

	input := service.RegisterOrganizationInput{
		Name:     "Konnet HQ",
		Username: "konnethq",
		Email:    "hq@konnet.example",
		Address:  "1 Marina Road",
		State:    "Lagos",
		City:     "Lagos",
		Country:  "Nigeria",
		Password: "s3cret-pass",
	}

	t.Run("registers and issues a token", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, org *model.Organization) error {
				org.ID = uuid.New()
				ok, err := hasher.Verify(input.Password, org.PasswordHash)
				require.NoError(t, err)
				assert.True(t, ok, "stored hash must verify against the plaintext")
				return nil
			})

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		out, err := svc.RegisterOrganization(context.Background(), input)
		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
		assert.Equal(t, model.RoleOrganization, out.Principal.PrincipalRole())
	})

	t.Run("duplicate name or username is rejected", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateKey)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		_, err := svc.RegisterOrganization(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		bad := input
		bad.Username = ""
		_, err := svc.RegisterOrganization(context.Background(), bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLoginOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()
	hash, _ := hasher.Hash("correct-pass")
	org := &model.Organization{ID: uuid.New(), Username: "konnethq", PasswordHash: hash}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByUsername(gomock.Any(), "konnethq").Return(org, nil)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		out, err := svc.LoginOrganization(context.Background(), service.LoginOrganizationInput{
			Username: "konnethq",
			Password: "correct-pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByUsername(gomock.Any(), "konnethq").Return(org, nil)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		_, err := svc.LoginOrganization(context.Background(), service.LoginOrganizationInput{
			Username: "konnethq",
			Password: "wrong-pass",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown username maps to invalid credentials", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		orgRepo.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, domain.ErrOrganizationNotFound)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		_, err := svc.LoginOrganization(context.Background(), service.LoginOrganizationInput{
			Username: "ghost",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestLoginMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()
	hash, _ := hasher.Hash("correct-pass")
	member := &model.Member{ID: uuid.New(), Phone: "+2348012345678", PasswordHash: hash}

	t.Run("valid phone and password", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		memberRepo.EXPECT().FindByPhone(gomock.Any(), member.Phone).Return(member, nil)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		out, err := svc.LoginMember(context.Background(), service.LoginMemberInput{
			Phone:    member.Phone,
			Password: "correct-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleMember, out.Principal.PrincipalRole())
		assert.NotEmpty(t, out.Token)
	})

	t.Run("non e164 phone is rejected before any lookup", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		_, err := svc.LoginMember(context.Background(), service.LoginMemberInput{
			Phone:    "08012345678",
			Password: "correct-pass",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown phone maps to invalid credentials", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
		adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

		memberRepo.EXPECT().FindByPhone(gomock.Any(), "+2348099999999").Return(nil, domain.ErrMemberNotFound)

		svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

		_, err := svc.LoginMember(context.Background(), service.LoginMemberInput{
			Phone:    "+2348099999999",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestLoginAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()
	hash, _ := hasher.Hash("correct-pass")
	admin := &model.Admin{ID: uuid.New(), Email: "root@konnet.example", PasswordHash: hash}

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	adminRepo := mocks.NewMockAdminRepositoryIface(ctrl)

	adminRepo.EXPECT().FindByEmail(gomock.Any(), admin.Email).Return(admin, nil)

	svc := newAuthService(orgRepo, memberRepo, adminRepo, hasher)

	out, err := svc.LoginAdmin(context.Background(), service.LoginAdminInput{
		Email:    admin.Email,
		Password: "correct-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, out.Principal.PrincipalRole())
	assert.NotEmpty(t, out.Token)
}
