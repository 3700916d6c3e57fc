// internal/service/member.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/repository"
	"github.com/konnethq/konnet/internal/sms"
	"github.com/konnethq/konnet/internal/storage"
)

type MemberService struct {
	memberRepo     repository.MemberRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	passwordHasher *auth.PasswordHasher
	smsSender      sms.Sender
	avatarStore    storage.AvatarStore
	validate       *validator.Validate
}

func NewMemberService(
	memberRepo repository.MemberRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	smsSender sms.Sender,
	avatarStore storage.AvatarStore,
) *MemberService {
	return &MemberService{
		memberRepo:     memberRepo,
		orgRepo:        orgRepo,
		passwordHasher: passwordHasher,
		smsSender:      smsSender,
		avatarStore:    avatarStore,
		validate:       validator.New(),
	}
}

type CreateMemberInput struct {
	FirstName     string   `json:"first_name" validate:"required"`
	LastName      string   `json:"last_name" validate:"required"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Phone         string   `json:"phone" validate:"required,e164,max=16"`
	Skills        []string `json:"skills"`
	Gender        string   `json:"gender" validate:"omitempty,oneof=male female 'prefer not to say'"`
	Occupation    string   `json:"occupation"`
	StateOfOrigin string   `json:"state_of_origin"`
	Address       string   `json:"address"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Password      string   `json:"password" validate:"omitempty,min=6"`
}

// optionalEmail keeps an absent email as NULL so that members without
// one never collide on the email index.
func optionalEmail(addr string) *string {
	if addr == "" {
		return nil
	}
	return &addr
}

// CreateOutput reports whether the create resolved to a brand new member
// or a link of an existing one.
type CreateOutput struct {
	Member *model.Member
	Linked bool
}

// Create adds a member under an organization. If a member with the same
// phone already exists, the organization is unioned into that member's
// membership set instead of creating a duplicate record; if it is already
// linked, the call fails with domain.ErrAlreadyMember. Same-key races are
// settled by the store's uniqueness constraint: the losing writer lands on
// the link path.
func (s *MemberService) Create(ctx context.Context, orgID uuid.UUID, input CreateMemberInput) (*CreateOutput, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, err
	}

	member := &model.Member{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         optionalEmail(input.Email),
		Phone:         input.Phone,
		Skills:        input.Skills,
		Gender:        input.Gender,
		Occupation:    input.Occupation,
		StateOfOrigin: input.StateOfOrigin,
		Address:       input.Address,
		State:         input.State,
		City:          input.City,
		Country:       input.Country,
		Role:          model.RoleMember,
		Memberships:   model.UUIDArray{orgID},
	}

	if input.Password != "" {
		hash, err := s.passwordHasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		member.PasswordHash = hash
	}

	err := s.memberRepo.Create(ctx, member)
	if err == nil {
		return &CreateOutput{Member: member}, nil
	}
	if !errors.Is(err, domain.ErrDuplicateKey) {
		return nil, err
	}

	// The store rejected the insert on a natural key. If a member with
	// this phone exists, link instead of duplicating; otherwise the clash
	// was on another key (the email index) and there is nothing to link.
	existing, err := s.memberRepo.FindByPhone(ctx, input.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, err
	}

	if existing.Memberships.Contains(orgID) {
		return nil, domain.ErrAlreadyMember
	}

	linked, err := s.memberRepo.AddMembership(ctx, existing.ID, orgID)
	if err != nil {
		return nil, err
	}

	return &CreateOutput{Member: linked, Linked: true}, nil
}

// GetInOrganization fetches one member scoped to an organization.
func (s *MemberService) GetInOrganization(ctx context.Context, memberID, orgID uuid.UUID) (*model.Member, error) {
	return s.memberRepo.FindInOrganization(ctx, memberID, orgID)
}

// RemoveFromOrganization pulls the organization out of the member's
// membership set. A member left with no memberships is reaped rather than
// retained as an orphan.
func (s *MemberService) RemoveFromOrganization(ctx context.Context, memberID, orgID uuid.UUID) error {
	member, err := s.memberRepo.RemoveMembership(ctx, memberID, orgID)
	if err != nil {
		return err
	}

	if len(member.Memberships) == 0 {
		if err := s.memberRepo.Delete(ctx, member.ID); err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
			return err
		}
	}

	return nil
}

// ReapOrphans deletes members with empty membership sets. Idempotent;
// exposed for maintenance so the sweep can be re-run safely.
func (s *MemberService) ReapOrphans(ctx context.Context) (int64, error) {
	return s.memberRepo.ReapOrphans(ctx)
}

// List runs the advanced query engine over an organization's members.
func (s *MemberService) List(ctx context.Context, orgID uuid.UUID, raw url.Values) (*repository.ListResult[model.Member], error) {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, err
	}
	return s.memberRepo.List(ctx, orgID, raw)
}

type ImportStatus string

const (
	ImportCreated   ImportStatus = "created"
	ImportLinked    ImportStatus = "linked"
	ImportDuplicate ImportStatus = "duplicate"
	ImportFailed    ImportStatus = "failed"
)

type ImportOutcome struct {
	Index  int          `json:"index"`
	Phone  string       `json:"phone"`
	Status ImportStatus `json:"status"`
	ID     *uuid.UUID   `json:"id,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type ImportReport struct {
	Total    int             `json:"total"`
	Created  int             `json:"created"`
	Linked   int             `json:"linked"`
	Rejected int             `json:"rejected"`
	Outcomes []ImportOutcome `json:"outcomes"`
}

// BulkImport runs every candidate through the same create-or-link logic
// concurrently. Items are independent: a failure never rolls back members
// that already committed, and the report is returned only once every item
// has reached a terminal outcome.
func (s *MemberService) BulkImport(ctx context.Context, orgID uuid.UUID, items []CreateMemberInput) (*ImportReport, error) {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, err
	}

	report := &ImportReport{
		Total:    len(items),
		Outcomes: make([]ImportOutcome, len(items)),
	}

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item CreateMemberInput) {
			defer wg.Done()

			outcome := ImportOutcome{Index: i, Phone: item.Phone}
			out, err := s.Create(ctx, orgID, item)
			switch {
			case err == nil && out.Linked:
				outcome.Status = ImportLinked
				id := out.Member.ID
				outcome.ID = &id
			case err == nil:
				outcome.Status = ImportCreated
				id := out.Member.ID
				outcome.ID = &id
			case errors.Is(err, domain.ErrAlreadyMember):
				outcome.Status = ImportDuplicate
				outcome.Error = err.Error()
			default:
				outcome.Status = ImportFailed
				outcome.Error = err.Error()
			}
			report.Outcomes[i] = outcome
		}(i, item)
	}
	wg.Wait()

	for _, o := range report.Outcomes {
		switch o.Status {
		case ImportCreated:
			report.Created++
		case ImportLinked:
			report.Linked++
		default:
			report.Rejected++
		}
	}

	return report, nil
}

type UpdateMemberInput struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Skills        []string `json:"skills"`
	Occupation    string   `json:"occupation"`
	StateOfOrigin string   `json:"state_of_origin"`
	Address       string   `json:"address"`
	State         string   `json:"state"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
}

// UpdateDetails applies a partial profile update; empty fields are left
// untouched.
func (s *MemberService) UpdateDetails(ctx context.Context, memberID uuid.UUID, input UpdateMemberInput) (*model.Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		member.FirstName = input.FirstName
	}
	if input.LastName != "" {
		member.LastName = input.LastName
	}
	if input.Email != "" {
		member.Email = optionalEmail(input.Email)
	}
	if input.Skills != nil {
		member.Skills = input.Skills
	}
	if input.Occupation != "" {
		member.Occupation = input.Occupation
	}
	if input.StateOfOrigin != "" {
		member.StateOfOrigin = input.StateOfOrigin
	}
	if input.Address != "" {
		member.Address = input.Address
	}
	if input.State != "" {
		member.State = input.State
	}
	if input.City != "" {
		member.City = input.City
	}
	if input.Country != "" {
		member.Country = input.Country
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpdatePassword verifies the current password before setting a new one.
func (s *MemberService) UpdatePassword(ctx context.Context, memberID uuid.UUID, current, next string) error {
	if len(next) < 6 {
		return fmt.Errorf("%w: password must be at least six characters", domain.ErrInvalidInput)
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	verified, err := s.passwordHasher.Verify(current, member.PasswordHash)
	if err != nil || !verified {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordHasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	member.PasswordHash = hash
	return s.memberRepo.Update(ctx, member)
}

// SetAvatar stores the uploaded image and records its URL on the member.
// An existing avatar is removed from storage first.
func (s *MemberService) SetAvatar(ctx context.Context, memberID uuid.UUID, r io.Reader, size int64, contentType string) (string, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return "", err
	}

	if member.PhotoID != "" {
		if err := s.avatarStore.Remove(ctx, member.PhotoID); err != nil {
			return "", fmt.Errorf("%w: %s", domain.ErrDeliveryFailure, err)
		}
	}

	asset, err := s.avatarStore.Upload(ctx, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrDeliveryFailure, err)
	}

	member.Photo = asset.URL
	member.PhotoID = asset.Key
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return "", err
	}

	return asset.URL, nil
}

// Search finds members by term within the organizations the caller may
// see: an organization searches its own members, a member searches across
// its organizations, an admin may name any organization.
func (s *MemberService) Search(ctx context.Context, principal model.Principal, explicitOrg *uuid.UUID, term string, raw url.Values) (*repository.ListResult[model.Member], error) {
	if term == "" {
		return nil, fmt.Errorf("%w: please provide a search term", domain.ErrInvalidInput)
	}

	var orgIDs []uuid.UUID
	switch p := principal.(type) {
	case *model.Organization:
		orgIDs = []uuid.UUID{p.ID}
	case *model.Member:
		if explicitOrg != nil {
			if !p.Memberships.Contains(*explicitOrg) {
				return nil, domain.ErrForbidden
			}
			orgIDs = []uuid.UUID{*explicitOrg}
		} else {
			orgIDs = p.Memberships
		}
	case *model.Admin:
		if explicitOrg == nil {
			return nil, fmt.Errorf("%w: organizationId is required", domain.ErrInvalidInput)
		}
		orgIDs = []uuid.UUID{*explicitOrg}
	default:
		return nil, domain.ErrForbidden
	}

	return s.memberRepo.Search(ctx, term, orgIDs, raw)
}

// MessageMember sends an SMS to a single member of the organization.
func (s *MemberService) MessageMember(ctx context.Context, orgID, memberID uuid.UUID, body string) error {
	member, err := s.memberRepo.FindInOrganization(ctx, memberID, orgID)
	if err != nil {
		return err
	}

	if err := s.smsSender.Send(ctx, sms.Message{To: []string{member.Phone}, Body: body}); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrDeliveryFailure, err)
	}
	return nil
}

// MessageMembers sends an SMS to every member of the organization.
func (s *MemberService) MessageMembers(ctx context.Context, orgID uuid.UUID, body string) error {
	phones, err := s.memberRepo.PhonesInOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if len(phones) == 0 {
		return domain.ErrMemberNotFound
	}

	if err := s.smsSender.Send(ctx, sms.Message{To: phones, Body: body}); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrDeliveryFailure, err)
	}
	return nil
}
