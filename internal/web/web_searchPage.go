package web

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-probview/internal/models"
)

// LIMIT_search caps the number of search results
var LIMIT_search = 100

// searchPage handles "/search?q=" over titles, slugs and tags
func (s *WebServer) searchPage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	data := SearchPageData{
		TemplateData: s.getBaseTemplateData(c, "Search"),
		Query:        query,
	}
	if query != "" {
		results, err := s.search(query)
		if err != nil {
			s.renderError(c, http.StatusInternalServerError, "Search failed", err.Error())
			return
		}
		data.Results = results
		data.ResultCount = len(results)
	}
	s.renderTemplate(c, "search", data)
}

// search queries the index, or matches registry slugs when running without one
func (s *WebServer) search(query string) ([]*models.ProblemEntry, error) {
	if s.DB != nil {
		return s.DB.SearchProblems(query, LIMIT_search)
	}
	q := strings.ToLower(query)
	var out []*models.ProblemEntry
	for _, slug := range s.Registry.Slugs() {
		if !strings.Contains(strings.ToLower(slug), q) {
			continue
		}
		out = append(out, &models.ProblemEntry{Slug: slug, Title: slug})
		if len(out) >= LIMIT_search {
			break
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}
