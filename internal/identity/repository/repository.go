package repository

import (
	"context"
	"database/sql"

	models "courier/internal/identity/model"
	"courier/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type UserRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrUserNotFound = errors.New("user not found")

func NewUserRepository(db *bun.DB, logger logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {

	_, err := r.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "identityRepo.CreateUser.Insert: ")
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetUserByID.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetUserByUsername.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUserByTokenHash(ctx context.Context, tokenHash []byte) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("token_hash = ?", tokenHash).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetUserByTokenHash.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) UpdateUserDisplayName(ctx context.Context, userID uuid.UUID, newName string) error {
	_, err := r.db.NewUpdate().Model((*models.User)(nil)).Set("name = ?", newName).Where("id = ?", userID).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "identityRepo.UpdateUserDisplayName.Update: ")
	}
	return nil
}
