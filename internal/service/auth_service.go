package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"familyhub/internal/database"
	"familyhub/internal/models"
	"familyhub/internal/security"
	"familyhub/internal/validation"
)

var (
	ErrMissingFamily    = errors.New("either a family id or a family name must be provided")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot probe which usernames exist. The two cases
	// are logged distinctly server-side.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService handles registration, login and session identity checks
type AuthService struct {
	users    UserStore
	families FamilyStore
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, families FamilyStore) *AuthService {
	return &AuthService{
		users:    users,
		families: families,
	}
}

// Register creates a new user account, creating a new family when no
// existing family id is supplied. It returns the new user's id.
//
// Family creation is two-phase: the family row is written before the user
// exists, with the creator's username as a placeholder, and the placeholder
// is rewritten to the real user id once the user row has been saved.
func (s *AuthService) Register(username, password, email, displayName, familyID, familyName string, role models.Role) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return "", err
	}

	if role == "" {
		role = models.RoleParent
	}
	if !role.Valid() {
		return "", ErrInvalidRole
	}

	if familyID == "" && familyName == "" {
		return "", ErrMissingFamily
	}

	// Check if username exists. The unique index on users.username closes
	// the race when two registrations pass this check at once.
	existing, err := s.users.GetUserByUsername(username)
	if err != nil {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		log.Printf("Registration failed: username %s already exists", username)
		return "", ErrUsernameTaken
	}

	createdFamily := false
	if familyID == "" {
		family := &models.Family{
			Name:             familyName,
			CreatedBy:        username, // resolved to the user id below
			CreatedByPending: true,
		}
		saved, err := s.families.SaveFamily(family)
		if err != nil {
			return "", fmt.Errorf("failed to create family: %w", err)
		}
		familyID = saved.ID
		createdFamily = true
		log.Printf("Created new family: %s (ID: %s)", familyName, familyID)
	} else {
		family, err := s.families.GetFamilyByID(familyID)
		if err != nil {
			return "", fmt.Errorf("failed to look up family: %w", err)
		}
		if family == nil {
			return "", fmt.Errorf("family %s: %w", familyID, ErrNotFound)
		}
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		DisplayName:  displayName,
		Role:         role,
		FamilyID:     familyID,
		IsActive:     true,
		LastLogin:    time.Now(),
	}
	saved, err := s.users.SaveUser(user)
	if err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			log.Printf("Registration failed: username %s already exists (concurrent insert)", username)
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("Created new user: %s (ID: %s)", username, saved.ID)

	// Update family members and resolve the created_by placeholder now that
	// the user id exists
	family, err := s.families.GetFamilyByID(familyID)
	if err != nil {
		return "", fmt.Errorf("failed to reload family: %w", err)
	}
	if family != nil {
		family.AddMember(saved.ID)
		if createdFamily {
			family.ResolveCreator(username, saved.ID)
		}
		if _, err := s.families.SaveFamily(family); err != nil {
			return "", fmt.Errorf("failed to update family: %w", err)
		}
	}

	return saved.ID, nil
}

// Login authenticates a user and binds the session to their id. Unknown
// usernames and wrong passwords produce the same error.
func (s *AuthService) Login(sess *models.Session, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		log.Printf("Login failed: username %s not found", username)
		return nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		log.Printf("Login failed: invalid password for user %s", username)
		return nil, ErrInvalidCredentials
	}

	user.LastLogin = time.Now()
	updated, err := s.users.SaveUser(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	sess.UserID = updated.ID
	log.Printf("User %s logged in successfully", username)
	return updated, nil
}

// Logout clears the session's identity and all session-scoped values,
// keeping only the navigation page, initialization flag and configuration
func (s *AuthService) Logout(sess *models.Session) {
	if sess.UserID != "" {
		log.Printf("User %s logged out", sess.UserID)
	}
	sess.Reset()
}

// IsAuthenticated reports whether the session references an active user.
// The user record is re-read from the store on every call so deactivation
// takes effect immediately.
func (s *AuthService) IsAuthenticated(sess *models.Session) bool {
	return s.GetCurrentUser(sess) != nil
}

// GetCurrentUser returns the session's live user record, or nil when the
// session is unauthenticated or the account is inactive. It never mutates
// the session.
func (s *AuthService) GetCurrentUser(sess *models.Session) *models.User {
	if sess == nil || sess.UserID == "" {
		return nil
	}

	user, err := s.users.GetUserByID(sess.UserID)
	if err != nil {
		log.Printf("Failed to load user %s: %v", sess.UserID, err)
		return nil
	}
	if user == nil || !user.IsActive {
		return nil
	}
	return user
}

// CheckAuthentication is the eviction-aware variant of GetCurrentUser: when
// the referenced account has been deactivated it performs a full logout as
// a side effect before reporting the session as unauthenticated.
func (s *AuthService) CheckAuthentication(sess *models.Session) (bool, *models.User) {
	if sess == nil || sess.UserID == "" {
		return false, nil
	}

	user, err := s.users.GetUserByID(sess.UserID)
	if err != nil {
		log.Printf("Failed to load user %s: %v", sess.UserID, err)
		return false, nil
	}
	if user == nil {
		return false, nil
	}

	if !user.IsActive {
		userID := sess.UserID
		s.Logout(sess)
		log.Printf("Access denied: user account %s is inactive", userID)
		return false, nil
	}

	return true, user
}

// UpdateProfile applies the mutable profile fields to a user
func (s *AuthService) UpdateProfile(userID string, update models.UserUpdate) error {
	if update.Email != nil {
		if err := validation.ValidateEmail(*update.Email); err != nil {
			return err
		}
	}
	if update.DisplayName != nil {
		if err := validation.ValidateDisplayName(*update.DisplayName); err != nil {
			return err
		}
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	update.Apply(user)
	if _, err := s.users.SaveUser(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
