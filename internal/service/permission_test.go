package service

import (
	"testing"

	"familyhub/internal/models"
)

func TestCheckPermission(t *testing.T) {
	roles := []models.Role{models.RoleGuest, models.RoleChild, models.RoleParent, models.RoleAdmin}

	// user_rank >= required_rank, for every combination of the four roles
	for _, userRole := range roles {
		for _, required := range roles {
			user := &models.User{ID: "user-1", Role: userRole}
			want := userRole.Rank() >= required.Rank()
			if got := CheckPermission(user, required); got != want {
				t.Errorf("CheckPermission(%s, %s) = %v, want %v", userRole, required, got, want)
			}
		}
	}
}

func TestCheckPermissionEdgeCases(t *testing.T) {
	t.Run("nil user", func(t *testing.T) {
		if CheckPermission(nil, models.RoleGuest) {
			t.Error("a missing user never has permission")
		}
	})

	t.Run("admin has every permission", func(t *testing.T) {
		admin := &models.User{Role: models.RoleAdmin}
		for _, required := range []models.Role{models.RoleGuest, models.RoleChild, models.RoleParent, models.RoleAdmin} {
			if !CheckPermission(admin, required) {
				t.Errorf("admin should satisfy %s", required)
			}
		}
	})

	t.Run("child lacks parent permission", func(t *testing.T) {
		child := &models.User{Role: models.RoleChild}
		if CheckPermission(child, models.RoleParent) {
			t.Error("child must not satisfy parent")
		}
	})

	t.Run("guest has only guest permission", func(t *testing.T) {
		guest := &models.User{Role: models.RoleGuest}
		if !CheckPermission(guest, models.RoleGuest) {
			t.Error("guest should satisfy guest")
		}
		if CheckPermission(guest, models.RoleChild) {
			t.Error("guest must not satisfy child")
		}
	})

	t.Run("unknown role never passes", func(t *testing.T) {
		odd := &models.User{Role: models.Role("owner")}
		if CheckPermission(odd, models.RoleGuest) {
			t.Error("an unrecognized role must not satisfy any requirement")
		}
	})
}
