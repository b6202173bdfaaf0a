package post_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/media"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/db"
	"github.com/GeorgeMish/Yatube/internal/shared/dbtest"
	"github.com/GeorgeMish/Yatube/internal/shared/validate"
)

var smallGIF = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

type recorder struct {
	mu     sync.Mutex
	keys   []string
	events []any
	err    error
}

func (r *recorder) WriteJSON(_ context.Context, key string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	r.events = append(r.events, v)
	return r.err
}

func (r *recorder) Close() error { return nil }

type fixture struct {
	store  *db.Store
	repo   post.Repository
	images *media.MemoryStorage
	events *recorder
	svc    post.Service
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		store:  dbtest.Open(t),
		images: media.NewMemoryStorage(),
		events: &recorder{},
		now:    time.Date(2024, 5, 9, 8, 30, 0, 0, time.UTC),
	}
	f.repo = post.NewRepository(f.store)
	f.svc = post.NewService(f.repo, group.NewRepository(f.store), f.images, f.events,
		post.WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) count(t *testing.T) int64 {
	n, err := f.repo.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission", func(t *testing.T) {
		f := newFixture(t)
		leo := dbtest.User(t, f.store, "leo")
		cats := dbtest.Group(t, f.store, "cats")

		p, err := f.svc.Create(ctx, leo, post.Input{
			Text:  "  hello cats  ",
			Group: strconv.FormatUint(cats.ID, 10),
			Image: &post.Upload{Filename: "small.gif", Data: smallGIF},
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, f.count(t))

		got, err := f.repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, "hello cats", got.Text)
		require.Equal(t, leo.ID, got.AuthorID)
		require.Equal(t, cats.ID, *got.GroupID)
		require.Regexp(t, `^posts/.+_small\.gif$`, got.Image)
		require.True(t, f.now.Equal(got.PubDate.UTC()))

		obj, ok := f.images.Get(got.Image)
		require.True(t, ok)
		require.Equal(t, "image/gif", obj.ContentType)

		require.Equal(t, []string{strconv.FormatUint(leo.ID, 10)}, f.events.keys)
		ev := f.events.events[0].(post.Event)
		require.Equal(t, p.ID, ev.ID)
		require.Equal(t, "leo", ev.Author)
		require.Equal(t, "hello cats", ev.Preview)
	})

	t.Run("without group or image", func(t *testing.T) {
		f := newFixture(t)
		leo := dbtest.User(t, f.store, "leo")
		p, err := f.svc.Create(ctx, leo, post.Input{Text: "plain"})
		require.NoError(t, err)
		require.Nil(t, p.GroupID)
		require.Empty(t, p.Image)
	})

	t.Run("publish failure does not fail the post", func(t *testing.T) {
		f := newFixture(t)
		f.events.err = errors.New("broker down")
		leo := dbtest.User(t, f.store, "leo")
		_, err := f.svc.Create(ctx, leo, post.Input{Text: "still saved"})
		require.NoError(t, err)
		require.EqualValues(t, 1, f.count(t))
	})

	invalid := []struct {
		name  string
		in    post.Input
		field string
	}{
		{"missing text", post.Input{Text: "   "}, "text"},
		{"unknown group", post.Input{Text: "x", Group: "999"}, "group"},
		{"garbage group", post.Input{Text: "x", Group: "cats"}, "group"},
		{"not an image", post.Input{Text: "x", Image: &post.Upload{Filename: "a.gif", Data: []byte("hello")}}, "image"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			leo := dbtest.User(t, f.store, "leo")

			_, err := f.svc.Create(ctx, leo, tc.in)
			fe, ok := validate.AsErrors(err)
			require.True(t, ok, "got %v", err)
			require.Contains(t, fe, tc.field)
			require.Zero(t, f.count(t))
			require.Empty(t, f.events.events)
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	leo := dbtest.User(t, f.store, "leo")
	cats := dbtest.Group(t, f.store, "cats")
	birds := dbtest.Group(t, f.store, "birds")
	pub := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	orig := dbtest.Post(t, f.store, leo, cats, "original", pub)

	t.Run("valid edit", func(t *testing.T) {
		p, err := f.svc.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		require.NoError(t, f.svc.Update(ctx, p, post.Input{Text: "changed", Group: strconv.FormatUint(birds.ID, 10)}))

		got, err := f.repo.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		require.Equal(t, "changed", got.Text)
		require.Equal(t, birds.ID, *got.GroupID)
		require.True(t, pub.Equal(got.PubDate.UTC()))
		require.EqualValues(t, 1, f.count(t))
	})

	t.Run("invalid edit changes nothing", func(t *testing.T) {
		p, err := f.svc.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		err = f.svc.Update(ctx, p, post.Input{Text: ""})
		_, ok := validate.AsErrors(err)
		require.True(t, ok)

		got, err := f.repo.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		require.Equal(t, "changed", got.Text)
	})

	t.Run("clearing the group", func(t *testing.T) {
		p, err := f.svc.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		require.NoError(t, f.svc.Update(ctx, p, post.Input{Text: "no group"}))
		got, err := f.repo.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		require.Nil(t, got.GroupID)
	})
}

// failingRepo refuses every write.
type failingRepo struct {
	post.Repository
	err error
}

func (r failingRepo) Create(context.Context, *post.Post) (*post.Post, error) { return nil, r.err }
func (r failingRepo) Update(context.Context, *post.Post) error               { return r.err }

// trackedImages records which keys were written and removed.
type trackedImages struct {
	*media.MemoryStorage
	mu      sync.Mutex
	put     []string
	deleted []string
}

func (s *trackedImages) Put(ctx context.Context, key, ct string, data []byte) error {
	s.mu.Lock()
	s.put = append(s.put, key)
	s.mu.Unlock()
	return s.MemoryStorage.Put(ctx, key, ct, data)
}

func (s *trackedImages) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.deleted = append(s.deleted, key)
	s.mu.Unlock()
	return s.MemoryStorage.Delete(ctx, key)
}

func TestFailedSaveLeavesNoImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	leo := dbtest.User(t, f.store, "leo")
	orig := dbtest.Post(t, f.store, leo, nil, "original", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	images := &trackedImages{MemoryStorage: media.NewMemoryStorage()}
	svc := post.NewService(failingRepo{Repository: f.repo, err: errors.New("db down")},
		group.NewRepository(f.store), images, f.events)
	upload := &post.Upload{Filename: "small.gif", Data: smallGIF}

	t.Run("create", func(t *testing.T) {
		_, err := svc.Create(ctx, leo, post.Input{Text: "lost", Image: upload})
		require.Error(t, err)
		require.Len(t, images.put, 1)
		require.Equal(t, images.put, images.deleted)
		_, ok := images.Get(images.put[0])
		require.False(t, ok)
		require.Empty(t, f.events.events)
	})

	t.Run("update", func(t *testing.T) {
		p, err := f.svc.GetByID(ctx, orig.ID)
		require.NoError(t, err)
		before := *p

		require.Error(t, svc.Update(ctx, p, post.Input{Text: "changed", Image: upload}))
		require.Equal(t, before.Text, p.Text)
		require.Equal(t, before.Image, p.Image)
		require.Len(t, images.put, 2)
		require.Equal(t, images.put, images.deleted)
	})
}

func TestSameFilenameKeepsImagesApart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	leo := dbtest.User(t, f.store, "leo")
	anna := dbtest.User(t, f.store, "anna")
	other := append([]byte("GIF89a"), []byte("different bytes")...)

	first, err := f.svc.Create(ctx, leo, post.Input{Text: "a", Image: &post.Upload{Filename: "cat.gif", Data: smallGIF}})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, anna, post.Input{Text: "b", Image: &post.Upload{Filename: "cat.gif", Data: other}})
	require.NoError(t, err)
	require.NotEqual(t, first.Image, second.Image)

	obj, ok := f.images.Get(first.Image)
	require.True(t, ok)
	require.Equal(t, smallGIF, obj.Data)
	obj, ok = f.images.Get(second.Image)
	require.True(t, ok)
	require.Equal(t, other, obj.Data)
}
