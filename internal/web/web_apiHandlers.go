package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-probview/internal/config"
	"github.com/go-while/go-probview/internal/models"
	"github.com/go-while/go-probview/internal/registry"
)

var LIMIT_listProblems = 128

// ProblemListResponse is the payload of /api/v1/problems
type ProblemListResponse struct {
	Data     interface{} `json:"data"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int         `json:"total"`
}

// listProblems handles "/api/v1/problems"
func (s *WebServer) listProblems(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" && p != "1" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	if s.DB == nil {
		slugs := s.Registry.Slugs()
		c.JSON(http.StatusOK, ProblemListResponse{Data: pageOf(slugs, page, LIMIT_listProblems), Page: page, PageSize: LIMIT_listProblems, Total: len(slugs)})
		return
	}

	total, err := s.DB.CountProblems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var problems []*models.ProblemEntry
	if offset, ok := pageOffset(page, LIMIT_listProblems, total); ok {
		problems, err = s.DB.ListProblems(LIMIT_listProblems, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if problems == nil {
		problems = []*models.ProblemEntry{}
	}
	c.JSON(http.StatusOK, ProblemListResponse{Data: problems, Page: page, PageSize: LIMIT_listProblems, Total: total})
}

// getProblem handles "/api/v1/problems/:slug" and returns the validated record
func (s *WebServer) getProblem(c *gin.Context) {
	slug := c.Param("slug")
	p, err := s.Registry.Resolve(c.Request.Context(), slug)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, p)
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, registry.ErrNoSlug):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrMalformed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// getStats handles "/api/v1/stats"
func (s *WebServer) getStats(c *gin.Context) {
	stats, lastRun, err := s.collectStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"problems":       stats,
		"last_index_run": lastRun,
		"uptime":         time.Since(s.StartTime).String(),
		"version":        config.AppVersion,
	})
}

// pageOffset returns the offset of a 1-based page, false when the page lies
// beyond total items
func pageOffset(page, size, total int) (int, bool) {
	if page < 1 || size < 1 || total < 1 {
		return 0, false
	}
	if page-1 >= (total+size-1)/size {
		return 0, false
	}
	return (page - 1) * size, true
}

func pageOf(slugs []string, page, size int) []string {
	start, ok := pageOffset(page, size, len(slugs))
	if !ok {
		return []string{}
	}
	end := start + size
	if end > len(slugs) {
		end = len(slugs)
	}
	return slugs[start:end]
}
