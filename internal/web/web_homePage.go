package web

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-probview/internal/config"
	"github.com/go-while/go-probview/internal/models"
)

// homePage handles "/" with the fixed example links and the problem list
func (s *WebServer) homePage(c *gin.Context) {
	links := s.Config.HomeLinks
	if len(links) == 0 {
		links = config.DefaultHomeLinks
	}
	data := HomePageData{
		TemplateData: s.getBaseTemplateData(c, "Home"),
		HomeLinks:    links,
	}

	var problems []*models.ProblemEntry
	if s.DB != nil {
		var err error
		problems, err = s.DB.ListProblems(0, 0)
		if err != nil {
			log.Printf("[WEB]: homePage list problems: %v", err)
		}
	}
	if len(problems) > 0 {
		data.Problems = problems
	} else {
		data.Slugs = s.Registry.Slugs()
	}

	s.renderTemplate(c, "home", data)
}
