// internal/service/organization.go
package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/repository"
)

type OrganizationService struct {
	orgRepo  repository.OrganizationRepositoryIface
	validate *validator.Validate
}

func NewOrganizationService(orgRepo repository.OrganizationRepositoryIface) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		validate: validator.New(),
	}
}

func (s *OrganizationService) Get(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.orgRepo.FindByID(ctx, id)
}

// List runs the advanced query engine over the organizations collection.
func (s *OrganizationService) List(ctx context.Context, raw url.Values) (*repository.ListResult[model.Organization], error) {
	return s.orgRepo.List(ctx, raw)
}

type UpdateOrganizationInput struct {
	Name    string `json:"name" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	State   string `json:"state"`
	City    string `json:"city"`
	Country string `json:"country"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
}

// Update applies a partial profile update; empty fields are left untouched.
func (s *OrganizationService) Update(ctx context.Context, id uuid.UUID, input UpdateOrganizationInput) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		org.Name = input.Name
	}
	if input.Email != "" {
		org.Email = input.Email
	}
	if input.Address != "" {
		org.Address = input.Address
	}
	if input.State != "" {
		org.State = input.State
	}
	if input.City != "" {
		org.City = input.City
	}
	if input.Country != "" {
		org.Country = input.Country
	}
	if input.Phone != "" {
		org.Phone = input.Phone
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// Delete removes the organization with its membership cascade: the id is
// pulled from every member's set and members left with an empty set are
// reaped, all in one transactional unit at the repository.
func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orgRepo.Delete(ctx, id)
}
