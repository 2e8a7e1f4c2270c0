package web

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-probview/internal/config"
	"github.com/go-while/go-probview/internal/render"
)

// getBaseTemplateData creates a TemplateData struct with common information
func (s *WebServer) getBaseTemplateData(c *gin.Context, title string) TemplateData {
	return TemplateData{
		Title:        title,
		Lang:         render.NegotiateLocale(c.GetHeader("Accept-Language")).String(),
		CurrentTime:  time.Now().Format("2006-01-02 15:04:05"),
		AppVersion:   config.AppVersion,
		ProblemCount: s.GetProblemCount(),
	}
}

// GetProblemCount returns the number of indexed problems
func (s *WebServer) GetProblemCount() int {
	if s.DB != nil {
		if n, err := s.DB.CountProblems(); err == nil {
			return n
		}
	}
	return s.Registry.Len()
}

// renderError renders an error page
func (s *WebServer) renderError(c *gin.Context, statusCode int, message string, errstring string) {
	errorData := struct {
		TemplateData
		Error      string
		Detail     string
		StatusCode int
	}{
		TemplateData: s.getBaseTemplateData(c, "Error"),
		Error:        message,
		StatusCode:   statusCode,
	}
	if statusCode < http.StatusInternalServerError {
		errorData.Detail = errstring
	}
	log.Printf("[WEB]: Error %d: %s - %s", statusCode, message, errstring)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(statusCode)
	if err := s.templates["error"].ExecuteTemplate(c.Writer, "base", errorData); err != nil {
		log.Printf("[WEB]: Error rendering error template: %v", err)
		c.String(statusCode, "Error: %s - %s", message, errstring)
	}
}

// renderTemplate renders a page template with the shared layout
func (s *WebServer) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		s.renderError(c, http.StatusInternalServerError, "Template error", "unknown template "+templateName)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, "base", data); err != nil {
		log.Printf("[WEB]: Error rendering template %s: %v", templateName, err)
		s.renderError(c, http.StatusInternalServerError, "Template error", err.Error())
	}
}
