// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Username       string     `gorm:"type:citext;uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	Address        string     `gorm:"type:text;not null" json:"address"`
	State          string     `gorm:"type:text;not null" json:"state"`
	City           string     `gorm:"type:text;not null" json:"city"`
	Country        string     `gorm:"type:text;not null" json:"country"`
	Phone          string     `gorm:"type:text" json:"phone,omitempty"`
	Photo          string     `gorm:"type:text" json:"photo,omitempty"`
	PhotoID        string     `gorm:"type:text" json:"-"`
	Role           Role       `gorm:"type:text;not null;default:'organization'" json:"role"`
	PasswordHash   string     `gorm:"type:text;not null" json:"-"`
	ResetTokenHash string     `gorm:"type:text" json:"-"`
	ResetExpires   *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (o *Organization) PrincipalID() uuid.UUID { return o.ID }
func (o *Organization) PrincipalRole() Role    { return RoleOrganization }
