// internal/service/password_reset.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/config"
	"github.com/konnethq/konnet/internal/domain"
	"github.com/konnethq/konnet/internal/email"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/repository"
)

type PasswordResetService struct {
	orgRepo        repository.OrganizationRepositoryIface
	memberRepo     repository.MemberRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	emailSender    email.Sender
	config         *config.Config
}

func NewPasswordResetService(
	orgRepo repository.OrganizationRepositoryIface,
	memberRepo repository.MemberRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
	emailSender email.Sender,
	cfg *config.Config,
) *PasswordResetService {
	return &PasswordResetService{
		orgRepo:        orgRepo,
		memberRepo:     memberRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		emailSender:    emailSender,
		config:         cfg,
	}
}

// RequestReset issues a one-time reset token for the principal registered
// under the email. Only the token's hash is persisted; the raw value goes
// to the delivery channel and nowhere else. If delivery fails the stored
// hash and expiry are cleared so no redeemable window is left dangling.
func (s *PasswordResetService) RequestReset(ctx context.Context, kind model.Role, emailAddr string) error {
	switch kind {
	case model.RoleOrganization:
		org, err := s.orgRepo.FindByEmail(ctx, emailAddr)
		if err != nil {
			return err
		}

		raw, hashed, err := auth.NewResetToken()
		if err != nil {
			return err
		}

		expires := time.Now().Add(s.config.Reset.Window)
		org.ResetTokenHash = hashed
		org.ResetExpires = &expires
		if err := s.orgRepo.Update(ctx, org); err != nil {
			return err
		}

		msg := s.resetMessage(org.Name, "organizations", raw)
		if err := s.emailSender.Send(ctx, email.Message{To: org.Email, Subject: "Password Reset Link", Body: msg}); err != nil {
			org.ResetTokenHash = ""
			org.ResetExpires = nil
			if uerr := s.orgRepo.Update(ctx, org); uerr != nil {
				return fmt.Errorf("clearing reset state: %w", uerr)
			}
			return fmt.Errorf("%w: %s", domain.ErrDeliveryFailure, err)
		}
		return nil

	case model.RoleMember:
		member, err := s.memberRepo.FindByEmail(ctx, emailAddr)
		if err != nil {
			return err
		}

		raw, hashed, err := auth.NewResetToken()
		if err != nil {
			return err
		}

		expires := time.Now().Add(s.config.Reset.Window)
		member.ResetTokenHash = hashed
		member.ResetExpires = &expires
		if err := s.memberRepo.Update(ctx, member); err != nil {
			return err
		}

		msg := s.resetMessage(member.FirstName+" "+member.LastName, "members", raw)
		if err := s.emailSender.Send(ctx, email.Message{To: emailAddr, Subject: "Password Reset Link", Body: msg}); err != nil {
			member.ResetTokenHash = ""
			member.ResetExpires = nil
			if uerr := s.memberRepo.Update(ctx, member); uerr != nil {
				return fmt.Errorf("clearing reset state: %w", uerr)
			}
			return fmt.Errorf("%w: %s", domain.ErrDeliveryFailure, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: unsupported principal kind %q", domain.ErrInvalidInput, kind)
	}
}

// ConsumeReset redeems a raw reset token: the principal whose stored hash
// matches and whose window is still open gets the new password, the reset
// state is cleared, and a fresh bearer token is issued. Unknown, expired
// and already-consumed tokens are indistinguishable to the caller.
func (s *PasswordResetService) ConsumeReset(ctx context.Context, kind model.Role, rawToken, newPassword string) (*AuthOutput, error) {
	if len(newPassword) < 6 {
		return nil, fmt.Errorf("%w: password must be at least six characters", domain.ErrInvalidInput)
	}

	hashed := auth.HashResetToken(rawToken)
	now := time.Now()

	passwordHash, err := s.passwordHasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	switch kind {
	case model.RoleOrganization:
		org, err := s.orgRepo.FindByResetHash(ctx, hashed, now)
		if err != nil {
			return nil, domain.ErrInvalidResetToken
		}

		org.PasswordHash = passwordHash
		org.ResetTokenHash = ""
		org.ResetExpires = nil
		if err := s.orgRepo.Update(ctx, org); err != nil {
			return nil, err
		}

		token, err := s.tokenManager.Generate(org.ID, model.RoleOrganization)
		if err != nil {
			return nil, fmt.Errorf("generating token: %w", err)
		}
		return &AuthOutput{Principal: org, Token: token}, nil

	case model.RoleMember:
		member, err := s.memberRepo.FindByResetHash(ctx, hashed, now)
		if err != nil {
			return nil, domain.ErrInvalidResetToken
		}

		member.PasswordHash = passwordHash
		member.ResetTokenHash = ""
		member.ResetExpires = nil
		if err := s.memberRepo.Update(ctx, member); err != nil {
			return nil, err
		}

		token, err := s.tokenManager.Generate(member.ID, model.RoleMember)
		if err != nil {
			return nil, fmt.Errorf("generating token: %w", err)
		}
		return &AuthOutput{Principal: member, Token: token}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported principal kind %q", domain.ErrInvalidInput, kind)
	}
}

func (s *PasswordResetService) resetMessage(name, segment, rawToken string) string {
	resetURL := fmt.Sprintf("%s/api/v1/%s/resetpassword/%s", s.config.BaseURL, segment, rawToken)
	return fmt.Sprintf(
		"Hello %s,\n\nYou are receiving this email because you (or someone else) has requested the reset of a password.\n\nPlease visit the link below to reset your password:\n\n%s\n\nIf you did not make this request, kindly ignore this email.\n\nCheers,\nKonnet",
		name, resetURL,
	)
}
