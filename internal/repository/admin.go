// internal/repository/admin.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/model"
)

type AdminRepositoryIface interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	result := r.db.WithContext(ctx).Create(admin)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("creating admin: %w", result.Error)
	}
	return nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("finding admin: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("finding admin by email: %w", err)
	}
	return &admin, nil
}

func (r *AdminRepository) Update(ctx context.Context, admin *model.Admin) error {
	if err := r.db.WithContext(ctx).Save(admin).Error; err != nil {
		return fmt.Errorf("updating admin: %w", err)
	}
	return nil
}
