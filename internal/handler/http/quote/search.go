package quote

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bilingual-quotes/internal/config"
	"bilingual-quotes/internal/domain/entity"
	"bilingual-quotes/internal/handler/http/respond"
	"bilingual-quotes/internal/usecase/search"
	"bilingual-quotes/internal/utils/text"
)

// maxQueryLength bounds q in characters before it reaches the store or translator.
const maxQueryLength = 500

type SearchHandler struct {
	Svc Service
	Cfg *config.SearchConfig
}

// ServeHTTP handles GET /quotes/search?q=&lang=&prefer_bilingual=&limit=.
// Store outages are answered with 200 and an empty array.
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query, err := h.parse(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	pairs, err := h.Svc.Search(r.Context(), query)
	if err != nil {
		code := http.StatusInternalServerError
		if isClientError(err) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewPairDTOs(pairs))
}

func (h SearchHandler) parse(r *http.Request) (search.Query, error) {
	values := r.URL.Query()

	query := strings.TrimSpace(values.Get("q"))
	if query == "" {
		return search.Query{}, errors.New("q query param required")
	}
	if text.CountRunes(query) > maxQueryLength {
		return search.Query{}, fmt.Errorf("q is too long: must be at most %d characters", maxQueryLength)
	}

	q := search.Query{Text: query, PreferBilingual: true}

	if raw := values.Get("lang"); raw != "" {
		lang, err := entity.ParseLanguage(raw)
		if err != nil {
			return search.Query{}, fmt.Errorf("invalid lang: %w", err)
		}
		q.Language = &lang
	}

	if raw := values.Get("prefer_bilingual"); raw != "" {
		prefer, err := strconv.ParseBool(raw)
		if err != nil {
			return search.Query{}, errors.New("invalid prefer_bilingual: must be true or false")
		}
		q.PreferBilingual = prefer
	}

	requested := 0
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return search.Query{}, errors.New("invalid limit: must be a positive integer")
		}
		requested = n
	}
	q.Limit = h.Cfg.ClampLimit(requested)

	return q, nil
}

func isClientError(err error) bool {
	return errors.Is(err, search.ErrInvalidQuery) ||
		errors.Is(err, search.ErrInvalidLimit) ||
		errors.Is(err, search.ErrInvalidOffset) ||
		errors.Is(err, search.ErrInvalidLanguage) ||
		errors.Is(err, search.ErrInvalidQuoteID)
}
