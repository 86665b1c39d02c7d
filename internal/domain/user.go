package domain

import "time"

type UserRole string

const (
	UserRoleUser    UserRole = "user"
	UserRolePartner UserRole = "partner"
	UserRoleAdmin   UserRole = "admin"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRolePartner, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated caller of an operation. It is produced by the
// credential layer and passed explicitly to every service call.
type Principal struct {
	ID    int32    `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
