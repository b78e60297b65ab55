package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// Repository errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDuplicatePhone = errors.New("a user with this phone number already exists")
)

// UserRepository implements repository.UserRepository using PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *pgxpool.Pool) repository.UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create implements repository.UserRepository.Create
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (
			id, name, phone, email, password_hash, role, active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.Name,
		u.Phone,
		u.Email,
		u.Password,
		u.Role,
		u.Active,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return ErrUserDuplicatePhone
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// FindByID implements repository.UserRepository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "id = $1", userID)
}

// FindByPhone implements repository.UserRepository.FindByPhone
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = $1", phone)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, phone, email, password_hash, role, active, created_at, updated_at
		FROM users
		WHERE %s
	`, where)

	u := &domain.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Name,
		&u.Phone,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return u, nil
}
