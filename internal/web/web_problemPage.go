package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-probview/internal/registry"
	"github.com/go-while/go-probview/internal/render"
)

// NoSlugMessage is shown when /view is requested without a slug
const NoSlugMessage = "Error: No problem slug was found in the URL."

// noSlugPage handles "/view" and "/view/" without touching the registry
func (s *WebServer) noSlugPage(c *gin.Context) {
	s.renderError(c, http.StatusBadRequest, NoSlugMessage, "")
}

// problemPage handles "/view/:slug". The shell and the loading placeholder are
// flushed before the record is read; the record then replaces the placeholder.
func (s *WebServer) problemPage(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		s.noSlugPage(c)
		return
	}
	if !s.Registry.Has(slug) {
		s.renderError(c, http.StatusNotFound, "Problem Not Found", "no problem is registered as '"+slug+"'")
		return
	}

	data := ProblemPageData{
		TemplateData: s.getBaseTemplateData(c, s.problemTitle(slug)),
		Slug:         slug,
	}
	tmpl := s.templates["problem"]

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := tmpl.ExecuteTemplate(c.Writer, "header", data); err != nil {
		log.Printf("[WEB]: problemPage header '%s': %v", slug, err)
		return
	}
	if err := tmpl.ExecuteTemplate(c.Writer, "loading", data); err != nil {
		log.Printf("[WEB]: problemPage loading '%s': %v", slug, err)
		return
	}
	c.Writer.Flush()

	p, err := s.Registry.Resolve(c.Request.Context(), slug)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Printf("[WEB]: problemPage '%s' abandoned: %v", slug, err)
		return
	case errors.Is(err, registry.ErrNotFound):
		// unregistered between the check above and the read
		data.Failure = "Problem Not Found"
	case err != nil:
		log.Printf("[WEB]: problemPage '%s': %v", slug, err)
		data.Failure = "Malformed problem data"
	}

	section := "failed"
	if data.Failure == "" {
		sel := render.ParseSelection(c.Request.URL.Query())
		loc := render.NegotiateLocale(c.GetHeader("Accept-Language"))
		data.View = render.Build(slug, p, sel, loc)
		section = "problem"
	}
	if err := tmpl.ExecuteTemplate(c.Writer, section, data); err != nil {
		log.Printf("[WEB]: problemPage %s '%s': %v", section, slug, err)
		return
	}
	if err := tmpl.ExecuteTemplate(c.Writer, "footer", data); err != nil {
		log.Printf("[WEB]: problemPage footer '%s': %v", slug, err)
	}
}

// problemTitle returns the indexed title of slug or the slug itself
func (s *WebServer) problemTitle(slug string) string {
	if s.DB == nil {
		return slug
	}
	entry, err := s.DB.GetProblemEntry(slug)
	if err != nil {
		return slug
	}
	return fmt.Sprintf("%04d. %s", entry.Number, entry.Title)
}
