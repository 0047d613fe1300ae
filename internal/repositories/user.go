package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/dxtrack/internal/models"
	"github.com/desertthunder/dxtrack/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository handles registration and authentication of operators.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Register creates a new user with a bcrypt password hash. The callsign is
// normalized uppercase and must be unique.
func (r *UserRepository) Register(callsign, password string) (*models.User, error) {
	callsign = strings.ToUpper(strings.TrimSpace(callsign))
	password = strings.TrimSpace(password)
	if callsign == "" || password == "" {
		return nil, fmt.Errorf("%w: callsign and password required", shared.ErrInvalidInput)
	}

	if _, err := r.GetByCallsign(callsign); err == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserExists, callsign)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	sequence, err := NextSequence(r.db, "users")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	user := models.NewUser(callsign, string(hash))
	user.ID = shared.GenerateID()
	user.Sequence = sequence

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO users (id, sequence, callsign, password_hash, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, user.ID, user.Sequence, user.Callsign, user.PasswordHash, boolToInt(user.IsAdmin), user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a callsign/password pair against the stored hash.
func (r *UserRepository) Authenticate(callsign, password string) (*models.User, error) {
	callsign = strings.ToUpper(strings.TrimSpace(callsign))

	user, err := r.GetByCallsign(callsign)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return user, nil
}

// GetByCallsign retrieves a user by normalized callsign, excluding soft-deleted users.
func (r *UserRepository) GetByCallsign(callsign string) (*models.User, error) {
	query := `
		SELECT id, sequence, callsign, password_hash, is_admin, created_at, updated_at, deleted_at
		FROM users
		WHERE callsign = ? AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(callsign))))
}

// SetAdmin flips the admin flag for a user.
func (r *UserRepository) SetAdmin(callsign string, admin bool) error {
	query := `
		UPDATE users
		SET is_admin = ?, updated_at = ?
		WHERE callsign = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, boolToInt(admin), time.Now(), strings.ToUpper(strings.TrimSpace(callsign)))
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrUserNotFound, callsign)
	}

	return nil
}

// List retrieves all users ordered by registration, excluding soft-deleted users.
func (r *UserRepository) List() ([]*models.User, error) {
	query := `
		SELECT id, sequence, callsign, password_hash, is_admin, created_at, updated_at, deleted_at
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY sequence ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, shared.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(scan func(...any) error) (*models.User, error) {
	var (
		user      models.User
		isAdmin   int
		deletedAt sql.NullTime
	)

	err := scan(&user.ID, &user.Sequence, &user.Callsign, &user.PasswordHash, &isAdmin, &user.CreatedAt, &user.UpdatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.IsAdmin = isAdmin != 0
	if deletedAt.Valid {
		user.DeletedAt = &deletedAt.Time
	}

	return &user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
