package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, phone, created_at, updated_at`

// 23505 is the postgres unique_violation class; the only unique constraint
// on users is the email index.
const uniqueViolation = "23505"

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (id, name, email, password_hash, role, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Phone).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row)
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email)=lower($1)`, email)
	return scanUser(row)
}

func (r *PGUserRepository) UpdateProfile(ctx context.Context, id, name, phone string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
		    phone = COALESCE(NULLIF($2, ''), phone),
		    updated_at = now()
		WHERE id=$3
		RETURNING `+userColumns, name, phone, id)
	return scanUser(row)
}

func (r *PGUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET password_hash=$1, updated_at=now() WHERE id=$2`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
