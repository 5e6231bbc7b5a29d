package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// OwnedByWhen scopes to the owner only when enforce is set; otherwise the
// lookup is by id alone.
func OwnedByWhen(userID uuid.UUID, enforce bool) Specification {
	if !enforce {
		return Noop{}
	}
	return UserOwnedBy{UserID: userID}
}
