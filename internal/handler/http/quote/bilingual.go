package quote

import (
	"net/http"

	"bilingual-quotes/internal/common/pagination"
	"bilingual-quotes/internal/handler/http/respond"
)

type BilingualHandler struct {
	Svc           Service
	PaginationCfg pagination.Config
}

// ServeHTTP handles GET /quotes/bilingual?page=&limit= and returns group-backed
// pairs in group order.
func (h BilingualHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	pairs, err := h.Svc.ListBilingual(r.Context(), params.Offset(), params.Limit)
	if err != nil {
		code := http.StatusInternalServerError
		if isClientError(err) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	data := NewPairDTOs(pairs)
	respond.JSON(w, http.StatusOK, pagination.NewResponse(data, pagination.NewMetadata(params, len(data))))
}
