// internal/model/admin.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Admin struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email          string     `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	Role           Role       `gorm:"type:text;not null;default:'admin'" json:"role"`
	PasswordHash   string     `gorm:"type:text;not null" json:"-"`
	ResetTokenHash string     `gorm:"type:text" json:"-"`
	ResetExpires   *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (a *Admin) PrincipalID() uuid.UUID { return a.ID }
func (a *Admin) PrincipalRole() Role    { return RoleAdmin }
