package follow

import (
	"time"

	"github.com/GeorgeMish/Yatube/internal/user"
)

// Follow means User receives Author's posts in the following feed.
// A pair is stored at most once.
type Follow struct {
	ID        uint64     `gorm:"primaryKey" json:"id"`
	UserID    uint64     `gorm:"not null;uniqueIndex:idx_follow_pair" json:"user_id"`
	User      *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint64     `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"author_id"`
	Author    *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}
