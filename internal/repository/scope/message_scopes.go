package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Composable gorm scopes shared by the repository implementations. Keeping
// query fragments here keeps the implementations to plain verb methods.

func ByReceiver(receiverId uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("receiver_id = ?", receiverId)
	}
}

func Unread() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_read = ?", false)
	}
}

func ByParent(parentId uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("parent_message_id = ?", parentId)
	}
}

// ThreadOrder is the documented reply ordering: timestamp first, insertion
// sequence as the tie-break.
func ThreadOrder() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp ASC").Order("seq ASC")
	}
}

func NewestFirst(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " DESC")
	}
}

func BetweenUsers(userA, userB uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA,
		)
	}
}
