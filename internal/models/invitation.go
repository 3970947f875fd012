package models

import "time"

// Invitation is a pending offer to join a family
type Invitation struct {
	ID          string
	Code        string
	Email       string
	FamilyID    string
	InvitedBy   string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	UsedAt      *time.Time
	UsedBy      *string
	InviterName string // Populated via JOIN
}

func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

func (i *Invitation) IsUsed() bool {
	return i.UsedAt != nil
}

func (i *Invitation) IsValid() bool {
	return !i.IsExpired() && !i.IsUsed()
}
