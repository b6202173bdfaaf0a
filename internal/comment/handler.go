package comment

import (
	"net/http"

	"github.com/GeorgeMish/Yatube/internal/auth"
	"github.com/GeorgeMish/Yatube/internal/metrics"
	"github.com/GeorgeMish/Yatube/internal/post"
	"github.com/GeorgeMish/Yatube/internal/shared/httpx"
	"github.com/GeorgeMish/Yatube/internal/shared/logx"
	"github.com/GeorgeMish/Yatube/internal/shared/validate"
)

const maxForm = 1 << 20

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

// Add always lands on the post page. A rejected comment is dropped without
// telling the user.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) error {
	viewer, err := auth.Require(r.Context())
	if err != nil {
		return err
	}
	id, err := httpx.PathID(r, "post_id")
	if err != nil {
		return err
	}
	if err := httpx.ParseForm(r, maxForm); err != nil {
		return err
	}
	_, err = h.svc.Add(r.Context(), viewer, id, Input{Text: r.PostFormValue("text")})
	fe, rejected := validate.AsErrors(err)
	switch {
	case rejected:
		logx.FromContext(r.Context()).WithField("post_id", id).WithField("errors", fe.Error()).Debug("comment rejected")
		metrics.CommentsAdded.WithLabelValues("rejected").Inc()
	case err != nil:
		return err
	default:
		metrics.CommentsAdded.WithLabelValues("accepted").Inc()
	}
	return httpx.Redirect(w, r, post.DetailURL(id))
}
