package follow

import (
	"net/http"

	"github.com/GeorgeMish/Yatube/internal/auth"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
	"github.com/GeorgeMish/Yatube/internal/user"
)

type Handler struct {
	svc   Service
	users user.Repository
}

func NewHandler(s Service, users user.Repository) *Handler { return &Handler{svc: s, users: users} }

func (h *Handler) target(r *http.Request) (*user.User, *user.User, error) {
	viewer, err := auth.Require(r.Context())
	if err != nil {
		return nil, nil, err
	}
	author, err := h.users.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		return nil, nil, err
	}
	return viewer, author, nil
}

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) error {
	viewer, author, err := h.target(r)
	if err != nil {
		return err
	}
	created, err := h.svc.Follow(r.Context(), viewer, author)
	if err != nil {
		return err
	}
	logx.FromContext(r.Context()).WithField("author", author.Username).WithField("created", created).Debug("follow")
	return httpx.Redirect(w, r, user.ProfileURL(author.Username))
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) error {
	viewer, author, err := h.target(r)
	if err != nil {
		return err
	}
	if _, err := h.svc.Unfollow(r.Context(), viewer, author); err != nil {
		return err
	}
	return httpx.Redirect(w, r, user.ProfileURL(author.Username))
}
