// internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/repository"
)

type AuthService struct {
	orgRepo        repository.OrganizationRepositoryIface
	memberRepo     repository.MemberRepositoryIface
	adminRepo      repository.AdminRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	validate       *validator.Validate
}

func NewAuthService(
	orgRepo repository.OrganizationRepositoryIface,
	memberRepo repository.MemberRepositoryIface,
	adminRepo repository.AdminRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *AuthService {
	return &AuthService{
		orgRepo:        orgRepo,
		memberRepo:     memberRepo,
		adminRepo:      adminRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		validate:       validator.New(),
	}
}

// AuthOutput pairs a freshly authenticated principal with its bearer token.
type AuthOutput struct {
	Principal model.Principal `json:"principal"`
	Token     string          `json:"token"`
}

type RegisterOrganizationInput struct {
	Name     string `json:"name" validate:"required,max=50"`
	Username string `json:"username" validate:"required,min=2,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
	State    string `json:"state" validate:"required"`
	City     string `json:"city" validate:"required"`
	Country  string `json:"country" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *AuthService) RegisterOrganization(ctx context.Context, input RegisterOrganizationInput) (*AuthOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	org := &model.Organization{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		Address:      input.Address,
		State:        input.State,
		City:         input.City,
		Country:      input.Country,
		Phone:        input.Phone,
		Role:         model.RoleOrganization,
		PasswordHash: hash,
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	token, err := s.tokenManager.Generate(org.ID, model.RoleOrganization)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthOutput{Principal: org, Token: token}, nil
}

type LoginOrganizationInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *AuthService) LoginOrganization(ctx context.Context, input LoginOrganizationInput) (*AuthOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	org, err := s.orgRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issue(org, org.PasswordHash, input.Password, model.RoleOrganization)
}

type LoginMemberInput struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Password string `json:"password" validate:"required"`
}

func (s *AuthService) LoginMember(ctx context.Context, input LoginMemberInput) (*AuthOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	member, err := s.memberRepo.FindByPhone(ctx, input.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issue(member, member.PasswordHash, input.Password, model.RoleMember)
}

type RegisterAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterAdmin creates a privileged principal. The route exposing it is
// restricted to already-authenticated admins.
func (s *AuthService) RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*AuthOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	admin := &model.Admin{
		Email:        input.Email,
		Role:         model.RoleAdmin,
		PasswordHash: hash,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	token, err := s.tokenManager.Generate(admin.ID, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthOutput{Principal: admin, Token: token}, nil
}

type LoginAdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *AuthService) LoginAdmin(ctx context.Context, input LoginAdminInput) (*AuthOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	admin, err := s.adminRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issue(admin, admin.PasswordHash, input.Password, model.RoleAdmin)
}

func (s *AuthService) issue(principal model.Principal, storedHash, password string, role model.Role) (*AuthOutput, error) {
	verified, err := s.passwordHasher.Verify(password, storedHash)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Generate(principal.PrincipalID(), role)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthOutput{Principal: principal, Token: token}, nil
}
