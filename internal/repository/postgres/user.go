package postgres

import (
	"context"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/google/uuid"
)

const userColumns = "u.id, u.email, u.username, u.password_hash, u.role, u.avatar_key, u.followers_count, u.following_count, u.created_at, u.updated_at"

type userRepo struct {
	db DB
}

func newUserRepo(db DB) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.FollowersCount = 0
	user.FollowingCount = 0
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, email, username, password_hash, role, avatar_key, followers_count, following_count, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.AvatarKey,
		user.FollowersCount,
		user.FollowingCount,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.AvatarKey,
		&user.FollowersCount,
		&user.FollowingCount,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE u.id = $1", id))
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users u WHERE LOWER(u.username) = LOWER($1)", username))
}

func (r *userRepo) FindByEmailOrUsername(ctx context.Context, emailOrUsername string) (*model.User, error) {
	return scanUser(r.db.QueryRow(
		ctx,
		"SELECT "+userColumns+" FROM users u WHERE LOWER(u.username) = LOWER($1) OR LOWER(u.email) = LOWER($1)",
		emailOrUsername,
	))
}

func (r *userRepo) ExistsWithUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users u WHERE LOWER(u.username) = LOWER($1))", username).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *userRepo) ExistsWithEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users u WHERE LOWER(u.email) = LOWER($1))", email).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
