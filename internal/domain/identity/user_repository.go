package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists accounts. Username and email are unique; the
// Exists checks back the registration and profile-update conflict rules.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *User) error

	// Count reports the total number of accounts. The seeder uses it to
	// decide whether the database is empty.
	Count(ctx context.Context) (int64, error)
}
