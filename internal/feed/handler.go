package feed

import (
	"net/http"

	"github.com/GeorgeMish/Yatube/internal/auth"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/paginate"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func page(r *http.Request) int { return paginate.Parse(r.URL.Query().Get("page")) }

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) error {
	p, err := h.svc.Index(r.Context(), page(r))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"page_obj": p}, http.StatusOK)
	return nil
}

func (h *Handler) Group(w http.ResponseWriter, r *http.Request) error {
	f, err := h.svc.Group(r.Context(), r.PathValue("slug"), page(r))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, f, http.StatusOK)
	return nil
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) error {
	f, err := h.svc.Profile(r.Context(), r.PathValue("username"), auth.ViewerID(r.Context()), page(r))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, f, http.StatusOK)
	return nil
}

func (h *Handler) Following(w http.ResponseWriter, r *http.Request) error {
	viewer, err := auth.Require(r.Context())
	if err != nil {
		return err
	}
	p, err := h.svc.Following(r.Context(), viewer.ID, page(r))
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"page_obj": p}, http.StatusOK)
	return nil
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.PathID(r, "post_id")
	if err != nil {
		return err
	}
	d, err := h.svc.Detail(r.Context(), id)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, d, http.StatusOK)
	return nil
}
