// internal/repository/organization.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/model"
)

type OrganizationRepositoryIface interface {
	Create(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindByUsername(ctx context.Context, username string) (*model.Organization, error)
	FindByEmail(ctx context.Context, email string) (*model.Organization, error)
	FindByResetHash(ctx context.Context, hash string, now time.Time) (*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, raw url.Values) (*ListResult[model.Organization], error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	result := r.db.WithContext(ctx).Create(org)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("creating organization: %w", result.Error)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByUsername(ctx context.Context, username string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization by username: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByEmail(ctx context.Context, email string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization by email: %w", err)
	}
	return &org, nil
}

// FindByResetHash locates an organization holding an unexpired reset token hash.
func (r *OrganizationRepository) FindByResetHash(ctx context.Context, hash string, now time.Time) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("reset_token_hash = ? AND reset_expires > ?", hash, now).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization by reset hash: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("updating organization: %w", err)
	}
	return nil
}

// Delete removes the organization and cascades over the membership edge:
// the id is pulled out of every member's membership set, then members left
// with an empty set are deleted. All three steps run in one transaction.
func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Organization{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("deleting organization: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrOrganizationNotFound
		}

		if err := tx.Model(&model.Member{}).
			Where("?::uuid = ANY(memberships)", id.String()).
			Update("memberships", gorm.Expr("array_remove(memberships, ?::uuid)", id.String())).Error; err != nil {
			return fmt.Errorf("pruning memberships: %w", err)
		}

		if err := tx.Where("cardinality(memberships) = 0").Delete(&model.Member{}).Error; err != nil {
			return fmt.Errorf("reaping orphaned members: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
