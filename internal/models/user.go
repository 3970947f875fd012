package models

import "time"

// Role is a user's permission level within a family
type Role string

const (
	RoleGuest  Role = "guest"
	RoleChild  Role = "child"
	RoleParent Role = "parent"
	RoleAdmin  Role = "admin"
)

// roleRanks orders roles by privilege - higher number = more permissions
var roleRanks = map[Role]int{
	RoleGuest:  0,
	RoleChild:  1,
	RoleParent: 2,
	RoleAdmin:  3,
}

// Rank returns the role's position in the privilege hierarchy.
// Unknown roles rank below GUEST so they never pass a permission check.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// Valid reports whether r is one of the four defined roles
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// ParseRole converts a stored role string to a Role
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User represents an account belonging to a family
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	DisplayName  string
	Role         Role
	FamilyID     string
	IsActive     bool
	LastLogin    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate lists the profile fields that may change after creation.
// Username and ID are immutable; role changes go through the admin path.
type UserUpdate struct {
	Email       *string
	DisplayName *string
}

// Apply copies the set fields onto the user
func (u *UserUpdate) Apply(user *User) {
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.DisplayName != nil {
		user.DisplayName = *u.DisplayName
	}
}
