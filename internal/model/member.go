// internal/model/member.go
package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Member struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName      string         `gorm:"type:text;not null" json:"first_name"`
	LastName       string         `gorm:"type:text;not null" json:"last_name"`
	// Email is optional. It is a pointer so that members registered without
	// one store NULL, which the unique index treats as distinct.
	Email          *string        `gorm:"type:citext;uniqueIndex" json:"email,omitempty"`
	Phone          string         `gorm:"type:text;uniqueIndex;not null" json:"phone"`
	Skills         pq.StringArray `gorm:"type:text[]" json:"skills,omitempty"`
	Gender         string         `gorm:"type:text" json:"gender,omitempty"`
	Occupation     string         `gorm:"type:text" json:"occupation,omitempty"`
	StateOfOrigin  string         `gorm:"type:text" json:"state_of_origin,omitempty"`
	Address        string         `gorm:"type:text" json:"address,omitempty"`
	State          string         `gorm:"type:text" json:"state,omitempty"`
	City           string         `gorm:"type:text" json:"city,omitempty"`
	Country        string         `gorm:"type:text" json:"country,omitempty"`
	Photo          string         `gorm:"type:text" json:"photo,omitempty"`
	PhotoID        string         `gorm:"type:text" json:"-"`
	Role           Role           `gorm:"type:text;not null;default:'member'" json:"role"`
	PasswordHash   string         `gorm:"type:text" json:"-"`
	ResetTokenHash string         `gorm:"type:text" json:"-"`
	ResetExpires   *time.Time     `json:"-"`

	// Memberships holds the ids of every organization this member belongs to.
	// It is the only place the member/organization edge is stored and must
	// never be empty while the row exists.
	Memberships UUIDArray `gorm:"type:uuid[];not null" json:"organizations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Member) PrincipalID() uuid.UUID { return m.ID }
func (m *Member) PrincipalRole() Role    { return RoleMember }

// UUIDArray is a custom type that implements the sql.Scanner and
// driver.Valuer interfaces for a Postgres uuid[] column.
type UUIDArray []uuid.UUID

// Scan implements the sql.Scanner interface
func (a *UUIDArray) Scan(value interface{}) error {
	if value == nil {
		*a = UUIDArray{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, a)
	}

	// Remove curly braces and split by comma
	str = strings.Trim(str, "{}")
	if str == "" {
		*a = UUIDArray{}
		return nil
	}

	parts := strings.Split(str, ",")
	out := make(UUIDArray, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.Trim(p, `"`))
		if err != nil {
			return fmt.Errorf("parsing uuid element %q: %w", p, err)
		}
		out = append(out, id)
	}
	*a = out
	return nil
}

// Value implements the driver.Valuer interface
func (a UUIDArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}

	elems := make([]string, len(a))
	for i, id := range a {
		elems[i] = id.String()
	}
	return "{" + strings.Join(elems, ",") + "}", nil
}

// Contains reports whether id is an element of the set.
func (a UUIDArray) Contains(id uuid.UUID) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns the set with id included, without introducing a duplicate.
func (a UUIDArray) Add(id uuid.UUID) UUIDArray {
	if a.Contains(id) {
		return a
	}
	return append(a, id)
}

// Remove returns the set with id excluded.
func (a UUIDArray) Remove(id uuid.UUID) UUIDArray {
	out := make(UUIDArray, 0, len(a))
	for _, v := range a {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
