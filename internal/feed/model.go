package feed

import (
	"github.com/GeorgeMish/Yatube/internal/comment"
	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/paginate"
	"github.com/GeorgeMish/Yatube/internal/user"
)

type Page = paginate.Page[post.Post]

// Filter narrows the post set. Zero fields do not filter.
type Filter struct {
	GroupID uint64
	// AuthorID keeps the posts of one author.
	AuthorID uint64
	// FollowerID keeps the posts of every author this user follows.
	FollowerID uint64
}

type GroupFeed struct {
	Group *group.Group `json:"group"`
	Page  *Page        `json:"page_obj"`
}

type ProfileFeed struct {
	Author    *user.User `json:"author"`
	FullName  string     `json:"full_name"`
	Count     int64      `json:"count"`
	Following bool       `json:"following"`
	Page      *Page      `json:"page_obj"`
}

// Detail is one post with its discussion.
type Detail struct {
	Post     *post.Post        `json:"post"`
	Comments []comment.Comment `json:"comments"`
	// Count is how many posts the author has published.
	Count int64         `json:"count"`
	Form  comment.Input `json:"form"`
}
