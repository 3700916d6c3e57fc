// internal/repository/member.go
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

type MemberRepositoryIface interface {
	Create(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	FindByPhone(ctx context.Context, phone string) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	FindInOrganization(ctx context.Context, memberID, orgID uuid.UUID) (*model.Member, error)
	FindByResetHash(ctx context.Context, hash string, now time.Time) (*model.Member, error)
	Update(ctx context.Context, member *model.Member) error
	AddMembership(ctx context.Context, memberID, orgID uuid.UUID) (*model.Member, error)
	RemoveMembership(ctx context.Context, memberID, orgID uuid.UUID) (*model.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReapOrphans(ctx context.Context) (int64, error)
	List(ctx context.Context, orgID uuid.UUID, raw url.Values) (*ListResult[model.Member], error)
	Search(ctx context.Context, term string, orgIDs []uuid.UUID, raw url.Values) (*ListResult[model.Member], error)
	PhonesInOrganization(ctx context.Context, orgID uuid.UUID) ([]string, error)
}

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	result := r.db.WithContext(ctx).Create(member)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("creating member: %w", result.Error)
	}
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding member: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) FindByPhone(ctx context.Context, phone string) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding member by phone: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding member by email: %w", err)
	}
	return &member, nil
}

// FindInOrganization fetches a member only if it belongs to the given
// organization. Used by org-scoped reads so one tenant cannot fetch
// another tenant's members by id.
func (r *MemberRepository) FindInOrganization(ctx context.Context, memberID, orgID uuid.UUID) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("id = ? AND ?::uuid = ANY(memberships)", memberID, orgID.String()).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding member in organization: %w", err)
	}
	return &member, nil
}

// FindByResetHash locates a member holding an unexpired reset token hash.
func (r *MemberRepository) FindByResetHash(ctx context.Context, hash string, now time.Time) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("reset_token_hash = ? AND reset_expires > ?", hash, now).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding member by reset hash: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) Update(ctx context.Context, member *model.Member) error {
	if err := r.db.WithContext(ctx).Save(member).Error; err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("updating member: %w", err)
	}
	return nil
}

// AddMembership unions the organization id into the member's membership
// set. The guard clause makes it idempotent: adding an id that is already
// present changes nothing.
func (r *MemberRepository) AddMembership(ctx context.Context, memberID, orgID uuid.UUID) (*model.Member, error) {
	err := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ? AND NOT (?::uuid = ANY(memberships))", memberID, orgID.String()).
		Update("memberships", gorm.Expr("array_append(memberships, ?::uuid)", orgID.String())).Error
	if err != nil {
		return nil, fmt.Errorf("adding membership: %w", err)
	}
	return r.FindByID(ctx, memberID)
}

// RemoveMembership pulls the organization id out of the member's
// membership set and returns the updated member.
func (r *MemberRepository) RemoveMembership(ctx context.Context, memberID, orgID uuid.UUID) (*model.Member, error) {
	result := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ?", memberID).
		Update("memberships", gorm.Expr("array_remove(memberships, ?::uuid)", orgID.String()))
	if result.Error != nil {
		return nil, fmt.Errorf("removing membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrMemberNotFound
	}
	return r.FindByID(ctx, memberID)
}

func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Member{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// PhonesInOrganization returns the phone numbers of every member of the
// given organization, for bulk messaging.
func (r *MemberRepository) PhonesInOrganization(ctx context.Context, orgID uuid.UUID) ([]string, error) {
	var phones []string
	err := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("?::uuid = ANY(memberships)", orgID.String()).
		Pluck("phone", &phones).Error
	if err != nil {
		return nil, fmt.Errorf("listing member phones: %w", err)
	}
	return phones, nil
}

// ReapOrphans deletes every member whose membership set is empty. Safe to
// re-run at any time; a second sweep is a no-op.
func (r *MemberRepository) ReapOrphans(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("cardinality(memberships) = 0").Delete(&model.Member{})
	if result.Error != nil {
		return 0, fmt.Errorf("reaping orphaned members: %w", result.Error)
	}
	return result.RowsAffected, nil
}
