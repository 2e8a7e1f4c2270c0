// Package web provides the HTTP server and web interface for go-probview
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-probview/internal/config"
	"github.com/go-while/go-probview/internal/database"
	"github.com/go-while/go-probview/internal/models"
	"github.com/go-while/go-probview/internal/registry"
	"github.com/go-while/go-probview/internal/render"
)

// WebServer serves the problem archive
type WebServer struct {
	DB        *database.Database // optional, nil when running without an index
	Registry  *registry.Registry
	Router    *gin.Engine
	Config    *config.WebConfig
	StartTime time.Time // Track server start time for uptime calculations

	templates map[string]*template.Template
	httpSrv   *http.Server
}

// TemplateData represents common template data
type TemplateData struct {
	Title        string
	Lang         string
	CurrentTime  string
	AppVersion   string
	ProblemCount int
}

// HomePageData represents data for the landing page
type HomePageData struct {
	TemplateData
	HomeLinks []config.HomeLink
	Problems  []*models.ProblemEntry
	Slugs     []string // used when no index database is available
}

// ProblemPageData represents data for the streamed problem page
type ProblemPageData struct {
	TemplateData
	Slug    string
	View    *render.View
	Failure string
}

// SearchPageData represents data for search page
type SearchPageData struct {
	TemplateData
	Query       string
	Results     []*models.ProblemEntry
	ResultCount int
}

// StatsPageData represents data for stats page
type StatsPageData struct {
	TemplateData
	Stats   *models.ProblemStats
	LastRun *models.IndexRun
	Uptime  string
}

// NewServer creates a new web server instance
func NewServer(db *database.Database, reg *registry.Registry, webconfig *config.WebConfig) (*WebServer, error) {
	if gin.Mode() != gin.TestMode {
		if webconfig.Debug {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &WebServer{
		DB:        db,
		Registry:  reg,
		Router:    router,
		Config:    webconfig,
		StartTime: time.Now(),
		templates: templates,
	}

	if webconfig.AccessLog {
		router.Use(server.ApacheLogFormat())
	} else if webconfig.Debug {
		router.Use(gin.Logger())
	}

	proxies := webconfig.TrustedProxies
	if len(proxies) == 0 {
		proxies = []string{"127.0.0.1", "::1"}
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	// SSL headers only when this process terminates TLS itself
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	router.Use(secure.New(secureConfig))
	router.Use(server.ReverseProxyMiddleware())

	server.setupRoutes()
	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	s.Router.GET("/static/*filepath", EmbeddedStaticHandler("/static"))

	s.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	s.Router.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, "User-agent: *\nDisallow:\n")
	})

	s.Router.GET("/", s.homePage)
	s.Router.GET("/view", s.noSlugPage)
	s.Router.GET("/view/", s.noSlugPage)
	s.Router.GET("/view/:slug", s.problemPage)
	s.Router.GET("/search", s.searchPage)
	s.Router.GET("/stats", s.statsPage)

	api := s.Router.Group("/api/v1")
	{
		api.GET("/problems", s.listProblems)
		api.GET("/problems/:slug", s.getProblem)
		api.GET("/stats", s.getStats)
	}

	s.Router.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page Not Found", c.Request.URL.Path)
	})
}

// Start starts the web server with SSL support if configured. It blocks
// until the server stops; a graceful Shutdown returns nil.
func (s *WebServer) Start() error {
	addr := ":" + strconv.Itoa(s.Config.ListenPort)
	s.StartTime = time.Now()
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	var err error
	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		log.Printf("[WEB]: Starting HTTPS server on %s", addr)
		err = s.httpSrv.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	} else {
		log.Printf("[WEB]: Starting HTTP server on %s", addr)
		err = s.httpSrv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for active requests
func (s *WebServer) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	log.Printf("[WEB]: Shutting down HTTP server")
	return s.httpSrv.Shutdown(ctx)
}

// ReverseProxyMiddleware handles X-Forwarded headers set by nginx and friends
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			// first entry is the original client
			ips := strings.Split(xff, ",")
			if clientIP := strings.TrimSpace(ips[0]); clientIP != "" {
				c.Request.RemoteAddr = clientIP + ":0"
			}
		}
		if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
			c.Request.RemoteAddr = realIP + ":0"
		}
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = host
		}
		c.Next()
	}
}

func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
