package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/innovatlas/country-innovation/internal/application/dashboard"
	"github.com/innovatlas/country-innovation/internal/domain/profile"
)

// Selection query parameters.  Absent parameters fall back to the first UI
// option, so GET /api/v1/profiles/BR with no query renders the default view.
const (
	paramMetric            = "metric"
	paramConstraint        = "citation_constraint"
	paramAggregation       = "aggregation"
	paramTransformation    = "transformation"
	paramApportioning      = "apportioning"
	paramColor             = "color"
	paramPatentAggregation = "patent_aggregation"
	paramPatentTransform   = "patent_transformation"
	paramPatentColor       = "patent_color"
)

// ProfileHandler serves the dashboard endpoints.
type ProfileHandler struct {
	svc *dashboard.Service
}

// NewProfileHandler wires the endpoints to the dashboard service.
func NewProfileHandler(svc *dashboard.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Countries handles GET /api/v1/countries.
func (h *ProfileHandler) Countries(c *gin.Context) {
	countries, err := h.svc.Countries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries})
}

// Options handles GET /api/v1/options.
func (h *ProfileHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Options())
}

// Profile handles GET /api/v1/profiles/:code.
func (h *ProfileHandler) Profile(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		respondError(c, err)
		return
	}

	p, err := h.svc.RenderProfile(c.Request.Context(), sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// parseSelection builds a Selection from the path code and query parameters,
// starting from the default view.
func parseSelection(c *gin.Context) (profile.Selection, error) {
	sel := profile.DefaultSelection(strings.ToUpper(strings.TrimSpace(c.Param("code"))))

	if v, ok := c.GetQuery(paramMetric); ok {
		m, err := profile.ParseMetric(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Publications.Metric = m
	}
	if v, ok := c.GetQuery(paramConstraint); ok {
		cc, err := profile.ParseCitationConstraint(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Publications.Constraint = cc
	}
	if v, ok := c.GetQuery(paramAggregation); ok {
		a, err := profile.ParseAggregation(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Publications.Aggregation = a
	}
	if v, ok := c.GetQuery(paramTransformation); ok {
		tr, err := profile.ParseTransformation(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Publications.Transformation = tr
	}
	if v, ok := c.GetQuery(paramApportioning); ok {
		a, err := profile.ParseApportioning(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Publications.Apportioning = a
	}
	if v, ok := c.GetQuery(paramColor); ok {
		cm, err := profile.ParsePublicationColor(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Publications.Color = cm
	}

	if v, ok := c.GetQuery(paramPatentAggregation); ok {
		a, err := profile.ParseAggregation(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Patents.Aggregation = a
	}
	if v, ok := c.GetQuery(paramPatentTransform); ok {
		tr, err := profile.ParseTransformation(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Patents.Transformation = tr
	}
	if v, ok := c.GetQuery(paramPatentColor); ok {
		cm, err := profile.ParsePatentColor(v)
		if err != nil {
			return profile.Selection{}, err
		}
		sel.Patents.Color = cm
	}

	return sel, nil
}
