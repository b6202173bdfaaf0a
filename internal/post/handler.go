package post

import (
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/GeorgeMish/Yatube/internal/auth"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/validate"
	"github.com/GeorgeMish/Yatube/internal/user"
)

const maxUpload = 10 << 20

func DetailURL(id uint64) string { return "/posts/" + strconv.FormatUint(id, 10) + "/" }
func EditURL(id uint64) string   { return DetailURL(id) + "edit/" }

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

// readInput accepts urlencoded and multipart bodies.
func readInput(r *http.Request) (Input, error) {
	if err := httpx.ParseForm(r, maxUpload); err != nil {
		return Input{}, err
	}
	in := Input{Text: r.PostFormValue("text"), Group: r.PostFormValue("group")}

	f, hdr, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil
	case err != nil:
		return Input{}, errors.Wrap(httpx.ErrBadRequest, err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUpload))
	if err != nil {
		return Input{}, errors.Wrap(err, "read image")
	}
	if len(data) > 0 {
		in.Image = &Upload{Filename: hdr.Filename, Data: data}
	}
	return in, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, f Form, code int) error {
	choices, err := h.svc.Groups(r.Context())
	if err != nil {
		return err
	}
	f.Choices = choices
	httpx.WriteJSON(w, f, code)
	return nil
}

func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) error {
	return h.render(w, r, Form{}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	viewer, err := auth.Require(r.Context())
	if err != nil {
		return err
	}
	in, err := readInput(r)
	if err != nil {
		return err
	}
	_, err = h.svc.Create(r.Context(), viewer, in)
	if fe, ok := validate.AsErrors(err); ok {
		return h.render(w, r, Form{Text: in.Text, Group: in.Group, Errors: fe}, http.StatusBadRequest)
	}
	if err != nil {
		return err
	}
	return httpx.Redirect(w, r, user.ProfileURL(viewer.Username))
}

// editable loads the post; a viewer who is not its author is sent to the
// detail page and ok is false.
func (h *Handler) editable(w http.ResponseWriter, r *http.Request) (p *Post, ok bool, err error) {
	viewer, err := auth.Require(r.Context())
	if err != nil {
		return nil, false, err
	}
	id, err := httpx.PathID(r, "post_id")
	if err != nil {
		return nil, false, err
	}
	if p, err = h.svc.GetByID(r.Context(), id); err != nil {
		return nil, false, err
	}
	if p.AuthorID != viewer.ID {
		return nil, false, httpx.Redirect(w, r, DetailURL(id))
	}
	return p, true, nil
}

func boundForm(p *Post) Form {
	f := Form{Text: p.Text, Image: p.Image, IsEdit: true}
	if p.GroupID != nil {
		f.Group = strconv.FormatUint(*p.GroupID, 10)
	}
	return f
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) error {
	p, ok, err := h.editable(w, r)
	if !ok {
		return err
	}
	return h.render(w, r, boundForm(p), http.StatusOK)
}

// Edit saves the post and returns to the edit page.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) error {
	p, ok, err := h.editable(w, r)
	if !ok {
		return err
	}
	in, err := readInput(r)
	if err != nil {
		return err
	}
	err = h.svc.Update(r.Context(), p, in)
	if fe, ok := validate.AsErrors(err); ok {
		f := boundForm(p)
		f.Text, f.Group, f.Errors = in.Text, in.Group, fe
		return h.render(w, r, f, http.StatusBadRequest)
	}
	if err != nil {
		return err
	}
	return httpx.Redirect(w, r, EditURL(p.ID))
}
