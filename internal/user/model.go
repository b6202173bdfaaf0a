package user

import (
	"net/url"
	"time"
)

// User mirrors the account owned by the identity provider. Only the fields
// the blog reads are kept here.
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"size:254" json:"email,omitempty"`
	FirstName string    `gorm:"size:150" json:"first_name,omitempty"`
	LastName  string    `gorm:"size:150" json:"last_name,omitempty"`
	CreatedAt time.Time `json:"-"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// ProfileURL is the path of the author's profile feed.
func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}
