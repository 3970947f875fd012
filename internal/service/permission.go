package service

import (
	"log"

	"familyhub/internal/models"
)

// CheckPermission reports whether the user holds the required role or a
// higher one. A nil user never has permission. Pure and stateless; every
// protected entry point is expected to call this before proceeding.
func CheckPermission(user *models.User, required models.Role) bool {
	if user == nil {
		return false
	}
	return user.Role.Rank() >= required.Rank()
}

// UpdateUserRole changes a user's role. The acting user must be an ADMIN;
// otherwise, or when either user cannot be resolved, the update is refused
// with a warning log and false is returned.
func (s *AuthService) UpdateUserRole(userID string, newRole models.Role, adminID string) bool {
	admin, err := s.users.GetUserByID(adminID)
	if err != nil {
		log.Printf("Role update failed: could not load acting user %s: %v", adminID, err)
		return false
	}
	if !CheckPermission(admin, models.RoleAdmin) {
		log.Printf("Role update failed: user %s lacks admin privileges", adminID)
		return false
	}

	if !newRole.Valid() {
		log.Printf("Role update failed: invalid role %q", newRole)
		return false
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		log.Printf("Role update failed: could not load user %s: %v", userID, err)
		return false
	}
	if user == nil {
		log.Printf("Role update failed: user %s not found", userID)
		return false
	}

	user.Role = newRole
	if _, err := s.users.SaveUser(user); err != nil {
		log.Printf("Role update failed: could not save user %s: %v", userID, err)
		return false
	}

	log.Printf("User %s role updated to %s by admin %s", userID, newRole, adminID)
	return true
}

// SetUserActive soft-enables or soft-disables an account without deleting
// it. The acting user must be an ADMIN. A deactivated user is evicted the
// next time their session runs CheckAuthentication.
func (s *AuthService) SetUserActive(userID string, active bool, adminID string) bool {
	admin, err := s.users.GetUserByID(adminID)
	if err != nil {
		log.Printf("Activation change failed: could not load acting user %s: %v", adminID, err)
		return false
	}
	if !CheckPermission(admin, models.RoleAdmin) {
		log.Printf("Activation change failed: user %s lacks admin privileges", adminID)
		return false
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		log.Printf("Activation change failed: could not load user %s: %v", userID, err)
		return false
	}
	if user == nil {
		log.Printf("Activation change failed: user %s not found", userID)
		return false
	}

	user.IsActive = active
	if _, err := s.users.SaveUser(user); err != nil {
		log.Printf("Activation change failed: could not save user %s: %v", userID, err)
		return false
	}

	log.Printf("User %s is_active set to %v by admin %s", userID, active, adminID)
	return true
}
