package migrate

import (
	"github.com/pkg/errors"

	"github.com/GeorgeMish/Yatube/internal/comment"
	"github.com/GeorgeMish/Yatube/internal/follow"
	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/user"
)

// Models lists the tables in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follow.Follow{},
	}
}

func AutoMigrateAll(store *db.Store) error {
	return errors.Wrap(store.Base.AutoMigrate(Models()...), "auto migrate")
}
