package users

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn with repositories bound to a single database
// transaction. The transaction is rolled back when fn returns an error.
type Transactor func(ctx context.Context, fn func(userRepo UserRepository, pendingUserRepo PendingUserRepository) error) error

func NewTransactor(db *gorm.DB) Transactor {
	return func(ctx context.Context, fn func(UserRepository, PendingUserRepository) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewUserRepository(tx), NewPendingUserRepository(tx))
		})
	}
}
