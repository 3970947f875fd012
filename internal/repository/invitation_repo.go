package repository

import (
	"database/sql"
	"fmt"
	"time"

	"familyhub/internal/database"
	"familyhub/internal/models"
	"familyhub/internal/security"

	"github.com/google/uuid"
)

// InvitationRepository handles database operations for family invitations
type InvitationRepository struct {
	db *database.DB
}

func NewInvitationRepository(db *database.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// CreateInvitation creates a new invitation with a random code
func (r *InvitationRepository) CreateInvitation(email, familyID, invitedBy string, expiresAt time.Time) (*models.Invitation, error) {
	code, err := security.GenerateCode(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation code: %w", err)
	}

	inv := &models.Invitation{
		ID:        uuid.New().String(),
		Code:      code,
		Email:     email,
		FamilyID:  familyID,
		InvitedBy: invitedBy,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	query := `
		INSERT INTO invitations (id, code, email, family_id, invited_by, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, inv.ID, inv.Code, inv.Email, inv.FamilyID, inv.InvitedBy, inv.CreatedAt, inv.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return inv, nil
}

// GetInvitationByCode retrieves an invitation by code
func (r *InvitationRepository) GetInvitationByCode(code string) (*models.Invitation, error) {
	query := `
		SELECT i.id, i.code, i.email, i.family_id, i.invited_by, i.created_at, i.expires_at, i.used_at, i.used_by,
		       COALESCE(u.display_name, '')
		FROM invitations i
		LEFT JOIN users u ON i.invited_by = u.id
		WHERE i.code = ?
	`

	inv := &models.Invitation{}
	var usedAt sql.NullTime
	var usedBy sql.NullString

	err := r.db.QueryRow(query, code).Scan(
		&inv.ID, &inv.Code, &inv.Email, &inv.FamilyID, &inv.InvitedBy,
		&inv.CreatedAt, &inv.ExpiresAt, &usedAt, &usedBy, &inv.InviterName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if usedAt.Valid {
		inv.UsedAt = &usedAt.Time
	}
	if usedBy.Valid {
		inv.UsedBy = &usedBy.String
	}

	return inv, nil
}

// MarkInvitationUsed records which user redeemed the invitation
func (r *InvitationRepository) MarkInvitationUsed(code, userID string) error {
	query := `UPDATE invitations SET used_at = ?, used_by = ? WHERE code = ?`
	_, err := r.db.Exec(query, time.Now(), userID, code)
	if err != nil {
		return fmt.Errorf("failed to mark invitation used: %w", err)
	}
	return nil
}
