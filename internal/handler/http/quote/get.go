package quote

import (
	"errors"
	"net/http"

	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/handler/http/pathutil"
	"bilingual-quotes/internal/handler/http/respond"
	"bilingual-quotes/internal/usecase/search"
)

type GetHandler struct{ Svc Service }

// ServeHTTP handles GET /quotes/{id}.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/quotes/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	q, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, search.ErrInvalidQuoteID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, entity.ErrNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewDTO(q))
}
