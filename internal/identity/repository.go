package identity

import (
	"context"

	models "courier/internal/identity/model"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByTokenHash resolves a bearer token hash to its user, for the
	// auth middleware. Token issuance lives in the external login service.
	GetUserByTokenHash(ctx context.Context, tokenHash []byte) (*models.User, error)
	UpdateUserDisplayName(ctx context.Context, userID uuid.UUID, newName string) error
}
