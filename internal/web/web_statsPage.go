package web

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-probview/internal/models"
)

// statsPage handles "/stats"
func (s *WebServer) statsPage(c *gin.Context) {
	stats, lastRun, err := s.collectStats()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, "Statistics unavailable", err.Error())
		return
	}
	data := StatsPageData{
		TemplateData: s.getBaseTemplateData(c, "Statistics"),
		Stats:        stats,
		LastRun:      lastRun,
		Uptime:       time.Since(s.StartTime).Truncate(time.Second).String(),
	}
	s.renderTemplate(c, "stats", data)
}

// collectStats reads aggregate counters from the index. Without a database
// only the registry size is known.
func (s *WebServer) collectStats() (*models.ProblemStats, *models.IndexRun, error) {
	if s.DB == nil {
		return &models.ProblemStats{Total: s.Registry.Len(), ByDifficulty: map[string]int{}}, nil, nil
	}
	stats, err := s.DB.GetProblemStats()
	if err != nil {
		return nil, nil, err
	}
	lastRun, err := s.DB.LastIndexRun()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, err
	}
	return stats, lastRun, nil
}
