package service

import (
	"time"

	"familyhub/internal/models"
)

// UserStore is the identity-repository surface the services consume.
// *repository.UserRepository satisfies it; tests use in-memory fakes.
type UserStore interface {
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	SaveUser(user *models.User) (*models.User, error)
	GetUsersByFamily(familyID string) ([]models.User, error)
}

// FamilyStore is the family persistence surface the services consume
type FamilyStore interface {
	GetFamilyByID(id string) (*models.Family, error)
	SaveFamily(family *models.Family) (*models.Family, error)
	IsFamilyMember(userID, familyID string) (bool, error)
}

// InvitationStore is the invitation persistence surface the family service consumes
type InvitationStore interface {
	CreateInvitation(email, familyID, invitedBy string, expiresAt time.Time) (*models.Invitation, error)
	GetInvitationByCode(code string) (*models.Invitation, error)
	MarkInvitationUsed(code, userID string) error
}
