package models

import "time"

// User is an identity record. A user holds at most one active refresh token;
// issuing a new one replaces the old, revoking clears it.
type User struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Username           string    `json:"username" gorm:"uniqueIndex;size:100"`
	Email              string    `json:"email" gorm:"uniqueIndex;size:255"`
	PasswordHash       string    `json:"-" gorm:"size:255"`
	RefreshToken       *string   `json:"-" gorm:"size:255"`
	RefreshTokenExpiry time.Time `json:"-"`
	Roles              []Role    `json:"roles" gorm:"many2many:user_roles"`
}

// Role names a permission group, e.g. ADMIN.
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:80"`
}

// RoleNames returns the names of all roles assigned to the user.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
