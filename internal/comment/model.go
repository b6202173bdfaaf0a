package comment

import (
	"time"

	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/user"
)

type Comment struct {
	ID       uint64     `gorm:"primaryKey" json:"id"`
	PostID   *uint64    `gorm:"index" json:"post_id"`
	Post     *post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID uint64     `gorm:"not null;index" json:"author_id"`
	Author   *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Text     string     `gorm:"type:text;not null" json:"text"`
	Created  time.Time  `gorm:"<-:create;autoCreateTime;index" json:"created"`
}

func (c Comment) String() string { return post.Preview(c.Text) }

// Input is the comment form.
type Input struct {
	Text string `form:"text" json:"text" validate:"required"`
}
