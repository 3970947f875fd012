package repository

import (
	"database/sql"
	"fmt"
	"time"

	"familyhub/internal/database"
	"familyhub/internal/models"

	"github.com/google/uuid"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password_hash, email, display_name, role, family_id, is_active, last_login, created_at, updated_at`

// SaveUser inserts the user when it has no id yet, otherwise updates the
// existing row. The stored user (with its assigned id) is returned. A
// duplicate username surfaces as database.ErrUniqueViolation.
func (r *UserRepository) SaveUser(user *models.User) (*models.User, error) {
	now := time.Now()

	if user.ID == "" {
		user.ID = uuid.New().String()
		user.CreatedAt = now
		user.UpdatedAt = now

		query := `
			INSERT INTO users (id, username, password_hash, email, display_name, role, family_id, is_active, last_login, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := r.db.Exec(query,
			user.ID, user.Username, user.PasswordHash, user.Email, user.DisplayName,
			string(user.Role), user.FamilyID, user.IsActive, user.LastLogin,
			user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", r.db.WrapUniqueViolation(err))
		}
		return user, nil
	}

	user.UpdatedAt = now
	query := `
		UPDATE users
		SET password_hash = ?, email = ?, display_name = ?, role = ?, family_id = ?, is_active = ?, last_login = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		user.PasswordHash, user.Email, user.DisplayName, string(user.Role),
		user.FamilyID, user.IsActive, user.LastLogin, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", r.db.WrapUniqueViolation(err))
	}
	return user, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return r.scanUser(r.db.QueryRow(query, username))
}

// GetUsersByFamily retrieves all users belonging to a family
func (r *UserRepository) GetUsersByFamily(familyID string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE family_id = ? ORDER BY created_at ASC`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *UserRepository) scanUser(row rowScanner) (*models.User, error) {
	user, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUserRow(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var role string
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.DisplayName,
		&role,
		&user.FamilyID,
		&user.IsActive,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role)
	if lastLogin.Valid {
		user.LastLogin = lastLogin.Time
	}
	return user, nil
}
