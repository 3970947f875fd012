package service

import (
	"fmt"
	"time"

	"familyhub/internal/database"
	"familyhub/internal/models"
)

// In-memory stores implementing the service store interfaces. They copy on
// read and write so tests can assert that failed operations left no trace.

type fakeUserStore struct {
	users  map[string]models.User
	nextID int

	// hideUsernames makes GetUserByUsername miss, simulating the window
	// where a concurrent registration has not committed yet
	hideUsernames bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (f *fakeUserStore) GetUserByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserStore) GetUserByUsername(username string) (*models.User, error) {
	if f.hideUsernames {
		return nil, nil
	}
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) SaveUser(user *models.User) (*models.User, error) {
	if user.ID == "" {
		for _, u := range f.users {
			if u.Username == user.Username {
				return nil, fmt.Errorf("failed to create user: %w", database.ErrUniqueViolation)
			}
		}
		f.nextID++
		user.ID = fmt.Sprintf("user-%d", f.nextID)
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = *user
	saved := *user
	return &saved, nil
}

func (f *fakeUserStore) GetUsersByFamily(familyID string) ([]models.User, error) {
	var users []models.User
	for _, u := range f.users {
		if u.FamilyID == familyID {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeFamilyStore struct {
	families map[string]models.Family
	nextID   int
}

func newFakeFamilyStore() *fakeFamilyStore {
	return &fakeFamilyStore{families: make(map[string]models.Family)}
}

func (f *fakeFamilyStore) GetFamilyByID(id string) (*models.Family, error) {
	if fam, ok := f.families[id]; ok {
		members := make([]string, len(fam.Members))
		copy(members, fam.Members)
		fam.Members = members
		return &fam, nil
	}
	return nil, nil
}

func (f *fakeFamilyStore) SaveFamily(family *models.Family) (*models.Family, error) {
	if family.ID == "" {
		f.nextID++
		family.ID = fmt.Sprintf("family-%d", f.nextID)
		family.CreatedAt = time.Now()
	}
	family.UpdatedAt = time.Now()
	f.families[family.ID] = *family
	saved := *family
	return &saved, nil
}

func (f *fakeFamilyStore) IsFamilyMember(userID, familyID string) (bool, error) {
	fam, ok := f.families[familyID]
	if !ok {
		return false, nil
	}
	for _, id := range fam.Members {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeInvitationStore struct {
	invitations map[string]models.Invitation
	nextID      int
}

func newFakeInvitationStore() *fakeInvitationStore {
	return &fakeInvitationStore{invitations: make(map[string]models.Invitation)}
}

func (f *fakeInvitationStore) CreateInvitation(email, familyID, invitedBy string, expiresAt time.Time) (*models.Invitation, error) {
	f.nextID++
	inv := models.Invitation{
		ID:        fmt.Sprintf("invitation-%d", f.nextID),
		Code:      fmt.Sprintf("code-%d", f.nextID),
		Email:     email,
		FamilyID:  familyID,
		InvitedBy: invitedBy,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	f.invitations[inv.Code] = inv
	saved := inv
	return &saved, nil
}

func (f *fakeInvitationStore) GetInvitationByCode(code string) (*models.Invitation, error) {
	if inv, ok := f.invitations[code]; ok {
		return &inv, nil
	}
	return nil, nil
}

func (f *fakeInvitationStore) MarkInvitationUsed(code, userID string) error {
	inv, ok := f.invitations[code]
	if !ok {
		return fmt.Errorf("invitation %s not found", code)
	}
	now := time.Now()
	inv.UsedAt = &now
	inv.UsedBy = &userID
	f.invitations[code] = inv
	return nil
}
