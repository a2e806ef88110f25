package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Password holds the bcrypt hash and is
// written by a second save after the row is created; it is never updated
// again outside the registration flow.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
