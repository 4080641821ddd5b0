package quote

import (
	"net/http"

	"bilingual-quotes/internal/common/pagination"
	"bilingual-quotes/internal/config"
)

// Register registers the quote routes on mux. The literal routes take
// precedence over the /quotes/ subtree that serves lookups by id.
// searchLimit wraps the search route, typically with a per-client rate limiter,
// and may be nil.
func Register(mux *http.ServeMux, svc Service, searchCfg *config.SearchConfig, paginationCfg pagination.Config, searchLimit func(http.Handler) http.Handler) {
	var searchHandler http.Handler = SearchHandler{Svc: svc, Cfg: searchCfg}
	if searchLimit != nil {
		searchHandler = searchLimit(searchHandler)
	}

	mux.Handle("GET /quotes/search", searchHandler)
	mux.Handle("GET /quotes/bilingual", BilingualHandler{Svc: svc, PaginationCfg: paginationCfg})
	mux.Handle("GET /quotes/", GetHandler{svc})
}
