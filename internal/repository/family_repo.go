package repository

import (
	"database/sql"
	"fmt"
	"time"

	"familyhub/internal/database"
	"familyhub/internal/models"

	"github.com/google/uuid"
)

// FamilyRepository handles database operations for families
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// SaveFamily inserts the family when it has no id yet, otherwise updates
// the existing row. The member list is rewritten inside one transaction so
// the join table always mirrors Members.
func (r *FamilyRepository) SaveFamily(family *models.Family) (*models.Family, error) {
	now := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if family.ID == "" {
		family.ID = uuid.New().String()
		family.CreatedAt = now
		family.UpdatedAt = now

		query := `
			INSERT INTO families (id, name, created_by, created_by_pending, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		_, err = tx.Exec(query,
			family.ID, family.Name, family.CreatedBy, family.CreatedByPending,
			family.CreatedAt, family.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create family: %w", err)
		}
	} else {
		family.UpdatedAt = now
		query := `
			UPDATE families
			SET name = ?, created_by = ?, created_by_pending = ?, updated_at = ?
			WHERE id = ?
		`
		_, err = tx.Exec(query,
			family.Name, family.CreatedBy, family.CreatedByPending,
			family.UpdatedAt, family.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update family: %w", err)
		}
	}

	// Rewrite membership rows to match the member list
	if _, err = tx.Exec("DELETE FROM family_members WHERE family_id = ?", family.ID); err != nil {
		return nil, fmt.Errorf("failed to clear family members: %w", err)
	}
	for _, userID := range family.Members {
		_, err = tx.Exec(
			"INSERT INTO family_members (family_id, user_id, joined_at) VALUES (?, ?, ?)",
			family.ID, userID, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add family member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return family, nil
}

// GetFamilyByID retrieves a family and its member list
func (r *FamilyRepository) GetFamilyByID(familyID string) (*models.Family, error) {
	query := `
		SELECT id, name, created_by, created_by_pending, created_at, updated_at
		FROM families
		WHERE id = ?
	`
	family := &models.Family{}
	err := r.db.QueryRow(query, familyID).Scan(
		&family.ID,
		&family.Name,
		&family.CreatedBy,
		&family.CreatedByPending,
		&family.CreatedAt,
		&family.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	members, err := r.getMemberIDs(familyID)
	if err != nil {
		return nil, err
	}
	family.Members = members

	return family, nil
}

// IsFamilyMember checks if a user is a member of a family
func (r *FamilyRepository) IsFamilyMember(userID, familyID string) (bool, error) {
	query := "SELECT COUNT(*) FROM family_members WHERE user_id = ? AND family_id = ?"
	var count int
	err := r.db.QueryRow(query, userID, familyID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check family membership: %w", err)
	}
	return count > 0, nil
}

func (r *FamilyRepository) getMemberIDs(familyID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM family_members
		WHERE family_id = ?
		ORDER BY joined_at ASC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, userID)
	}
	return members, rows.Err()
}
