package models

import "time"

// Family represents a group of users sharing one household
type Family struct {
	ID   string
	Name string

	// CreatedBy holds the creator's user id once registration completes.
	// While the creator's own account is still being written it temporarily
	// holds their username; CreatedByPending marks that state. A family is
	// never left pending after a successful registration.
	CreatedBy        string
	CreatedByPending bool

	Members   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether userID appears in the member list
func (f *Family) HasMember(userID string) bool {
	for _, id := range f.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember appends userID to the member list if not already present
func (f *Family) AddMember(userID string) {
	if !f.HasMember(userID) {
		f.Members = append(f.Members, userID)
	}
}

// ResolveCreator rewrites the pending username placeholder to the creator's
// user id. Returns true if the family was in the pending state for username.
func (f *Family) ResolveCreator(username, userID string) bool {
	if f.CreatedByPending && f.CreatedBy == username {
		f.CreatedBy = userID
		f.CreatedByPending = false
		return true
	}
	return false
}
