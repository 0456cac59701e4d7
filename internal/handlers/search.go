package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/torrentfind/internal/constants"
	apperrors "github.com/amaumene/torrentfind/internal/errors"
	"github.com/amaumene/torrentfind/pkg/torrentsearch"
	"github.com/amaumene/torrentfind/pkg/torrentsearch/models"
)

// SearchResponse is the body of a single provider search.
type SearchResponse struct {
	Provider models.ProviderKind    `json:"provider"`
	Query    string                 `json:"query"`
	Results  []models.TorrentRecord `json:"results"`
}

// SearchAllResponse is the body of a fan-out search. Errors only lists the
// providers that failed.
type SearchAllResponse struct {
	Query   string                                         `json:"query"`
	Results map[models.ProviderKind][]models.TorrentRecord `json:"results"`
	Errors  map[models.ProviderKind]string                 `json:"errors"`
	Merged  []models.TorrentRecord                         `json:"merged"`
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// handleSearch serves GET /search/:provider?q=<term>[&id=<match id>][&min_seeders=<n>]
func (h *Handler) handleSearch(c *gin.Context) {
	term, err := queryTerm(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	minSeeders, err := minSeedersParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	kind := models.ProviderKind(strings.ToLower(c.Param("provider")))
	query := models.ProviderQuery{Term: term, MatchID: strings.TrimSpace(c.Query("id"))}

	records, err := h.search.SearchQuery(c.Request.Context(), kind, query)
	if err != nil {
		h.respondError(c, apperrors.FromSearchError(err))
		return
	}
	records = h.sorter.FilterByMinSeeders(records, minSeeders)

	h.logTopResults(term, records)
	c.JSON(http.StatusOK, SearchResponse{
		Provider: kind,
		Query:    term,
		Results:  records,
	})
}

// handleSearchAll serves GET /search?q=<term>[&providers=a,b][&min_seeders=<n>]
func (h *Handler) handleSearchAll(c *gin.Context) {
	term, err := queryTerm(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	minSeeders, err := minSeedersParam(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	kinds := parseProviders(c.Query("providers"))
	outcomes := h.search.SearchAll(c.Request.Context(), term, kinds...)

	response := SearchAllResponse{
		Query:   term,
		Results: make(map[models.ProviderKind][]models.TorrentRecord, len(outcomes)),
		Errors:  make(map[models.ProviderKind]string),
		Merged:  h.sorter.FilterByMinSeeders(h.search.Merge(outcomes), minSeeders),
	}
	for kind, outcome := range outcomes {
		if outcome.Err != nil {
			continue
		}
		response.Results[kind] = h.sorter.FilterByMinSeeders(outcome.Records, minSeeders)
	}
	for kind, err := range torrentsearch.GetProviderErrors(outcomes) {
		response.Errors[kind] = apperrors.FromSearchError(err).Message
	}

	h.logTopResults(term, response.Merged)
	c.JSON(http.StatusOK, response)
}

func queryTerm(c *gin.Context) (string, error) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return "", apperrors.NewInvalidQueryError("query parameter q is required")
	}
	if len(term) > constants.MaxQueryLength {
		return "", apperrors.NewInvalidQueryError(fmt.Sprintf("query longer than %d characters", constants.MaxQueryLength))
	}
	return term, nil
}

func minSeedersParam(c *gin.Context) (uint32, error) {
	raw := strings.TrimSpace(c.Query("min_seeders"))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.NewInvalidQueryError(fmt.Sprintf("min_seeders must be a non-negative integer, got %q", raw))
	}
	return uint32(n), nil
}

func parseProviders(raw string) []models.ProviderKind {
	if raw == "" {
		return nil
	}
	var kinds []models.ProviderKind
	for _, p := range strings.Split(raw, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			kinds = append(kinds, models.ProviderKind(p))
		}
	}
	return kinds
}

func (h *Handler) respondError(c *gin.Context, err error) {
	apiErr := apperrors.FromSearchError(err)
	status := apiErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.Errorf("[Search] request failed: %v", apiErr)
	}
	c.JSON(status, errorResponse{Error: apiErr.Message, Type: apiErr.Type})
}

// logTopResults writes the head of a result list at debug level, ordered by
// seeders.
func (h *Handler) logTopResults(term string, records []models.TorrentRecord) {
	top := slices.Clone(records[:min(len(records), constants.MaxResultsToLog)])
	_, lines := h.sorter.GetSortedWithDebugInfo(top)
	for _, line := range lines {
		h.logger.Debugf("[Search] %q %s", term, line)
	}
}
