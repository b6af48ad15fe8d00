package repositories

import (
	"context"

	"github.com/brtdigital/remesa-backend/internal/models"
)

// UserReader defines read operations for users.
type UserReader interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*models.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListSellerEligible retrieves active users with a sales or staff role,
	// ordered by user ID for a stable round-robin rotation.
	ListSellerEligible(ctx context.Context) ([]models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	// SaveUser persists a new user; a duplicate email returns ErrDuplicate.
	SaveUser(ctx context.Context, user models.User) error
}

// UserRepositoryFacade combines user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
