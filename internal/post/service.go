package post

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/GeorgeMish/Yatube/internal/group"
	"github.com/GeorgeMish/Yatube/internal/kafka"
	"github.com/GeorgeMish/Yatube/internal/media"
	"github.com/GeorgeMish/Yatube/internal/metrics"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
	"github.com/GeorgeMish/Yatube/internal/shared/validate"
	"github.com/GeorgeMish/Yatube/internal/user"
)

const (
	msgInvalidGroup = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

type Service interface {
	// Create validates in and publishes a post by author. Field errors come
	// back as validate.Errors; nothing is persisted in that case.
	Create(ctx context.Context, author *user.User, in Input) (*Post, error)
	// Update applies in to p. pub_date and author never change.
	Update(ctx context.Context, p *Post, in Input) error
	GetByID(ctx context.Context, id uint64) (*Post, error)
	Groups(ctx context.Context) ([]group.Group, error)
}

type Option func(*service)

// WithClock replaces time.Now as the source of pub_date.
func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

type service struct {
	repo   Repository
	groups group.Repository
	images media.Storage
	events kafka.Writer
	now    func() time.Time
}

func NewService(r Repository, g group.Repository, images media.Storage, events kafka.Writer, opts ...Option) Service {
	s := &service{repo: r, groups: g, images: images, events: events, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

type cleaned struct {
	text    string
	groupID *uint64
	image   *Upload
	ctype   string
}

func (s *service) clean(ctx context.Context, in Input) (*cleaned, error) {
	in.Text = strings.TrimSpace(in.Text)
	errs := validate.Errors{}
	if err := validate.Struct(in); err != nil {
		fe, ok := validate.AsErrors(err)
		if !ok {
			return nil, err
		}
		errs = fe
	}

	out := &cleaned{text: in.Text}
	if raw := strings.TrimSpace(in.Group); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs.Add("group", msgInvalidGroup)
		} else if g, err := s.groups.GetByID(ctx, id); err != nil {
			if !errors.Is(err, httpx.ErrNotFound) {
				return nil, err
			}
			errs.Add("group", msgInvalidGroup)
		} else {
			out.groupID = &g.ID
		}
	}
	if in.Image != nil {
		ct, ok := media.DetectImage(in.Image.Data)
		if !ok {
			errs.Add("image", msgInvalidImage)
		}
		out.image, out.ctype = in.Image, ct
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (s *service) store(ctx context.Context, up *Upload, ctype string) (string, error) {
	key := media.ObjectKey(up.Filename)
	if err := s.images.Put(ctx, key, ctype, up.Data); err != nil {
		return "", errors.Wrap(err, "store image")
	}
	return key, nil
}

func (s *service) Create(ctx context.Context, author *user.User, in Input) (*Post, error) {
	c, err := s.clean(ctx, in)
	if err != nil {
		return nil, err
	}
	p := &Post{Text: c.text, AuthorID: author.ID, GroupID: c.groupID, PubDate: s.now()}
	if c.image != nil {
		if p.Image, err = s.store(ctx, c.image, c.ctype); err != nil {
			return nil, err
		}
	}
	if _, err := s.repo.Create(ctx, p); err != nil {
		s.discard(ctx, p.Image)
		return nil, err
	}
	p.Author = author
	metrics.PostsPublished.Inc()

	ev := Event{
		ID:       p.ID,
		AuthorID: author.ID,
		Author:   author.Username,
		GroupID:  p.GroupID,
		Preview:  p.String(),
		Image:    p.Image,
		PubDate:  p.PubDate,
	}
	if err := s.events.WriteJSON(ctx, strconv.FormatUint(author.ID, 10), ev); err != nil {
		logx.FromContext(ctx).WithError(err).WithField("post_id", p.ID).Warn("post event not published")
	}
	return p, nil
}

// Update leaves p untouched unless the row was saved.
func (s *service) Update(ctx context.Context, p *Post, in Input) error {
	c, err := s.clean(ctx, in)
	if err != nil {
		return err
	}
	next := *p
	next.Text, next.GroupID = c.text, c.groupID
	if c.image != nil {
		if next.Image, err = s.store(ctx, c.image, c.ctype); err != nil {
			return err
		}
	}
	if err := s.repo.Update(ctx, &next); err != nil {
		if next.Image != p.Image {
			s.discard(ctx, next.Image)
		}
		return err
	}
	*p = next
	return nil
}

// discard removes an image whose post was never saved.
func (s *service) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		logx.FromContext(ctx).WithError(err).WithField("image", key).Warn("orphan image not removed")
	}
}

func (s *service) GetByID(ctx context.Context, id uint64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Groups(ctx context.Context) ([]group.Group, error) {
	return s.groups.List(ctx)
}
