package post

import (
	"time"

	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/user"
)

// textPreview is how many characters of Text String shows.
const textPreview = 15

type Post struct {
	ID       uint64       `gorm:"primaryKey" json:"id"`
	Text     string       `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time    `gorm:"<-:create;autoCreateTime;index" json:"pub_date"`
	AuthorID uint64       `gorm:"not null;index" json:"author_id"`
	Author   *user.User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	GroupID  *uint64      `gorm:"index" json:"group_id"`
	Group    *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image    string       `gorm:"size:255" json:"image,omitempty"`
}

func (p Post) String() string { return Preview(p.Text) }

// Preview cuts s to its first 15 characters.
func Preview(s string) string {
	r := []rune(s)
	if len(r) > textPreview {
		r = r[:textPreview]
	}
	return string(r)
}

// Upload is an image attached to a post form.
type Upload struct {
	Filename string
	Data     []byte
}

// Input is the submitted post form. Group carries the group id as sent by
// the choice widget; empty means no group.
type Input struct {
	Text  string  `form:"text" validate:"required"`
	Group string  `form:"group"`
	Image *Upload `form:"image"`
}

// Form is what the create and edit views render.
type Form struct {
	Text    string            `json:"text"`
	Group   string            `json:"group"`
	Image   string            `json:"image,omitempty"`
	Choices []group.Group     `json:"group_choices"`
	IsEdit  bool              `json:"is_edit"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Event is published after a post is created.
type Event struct {
	ID       uint64    `json:"id"`
	AuthorID uint64    `json:"author_id"`
	Author   string    `json:"author"`
	GroupID  *uint64   `json:"group_id,omitempty"`
	Preview  string    `json:"preview"`
	Image    string    `json:"image,omitempty"`
	PubDate  time.Time `json:"pub_date"`
}
