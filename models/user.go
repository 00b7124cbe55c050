// user.go - Defines the User model for the database

package models

import "time"

// Role is the access level of a user. There are exactly two.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account. Username and email are immutable and
// globally unique; the password column only ever holds a bcrypt hash.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"unique;not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Avatar    *string   `json:"avatar"`
	Role      Role      `json:"role" gorm:"type:text;default:'user'"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
