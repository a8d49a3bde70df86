package server

import (
	"context"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/talentsearch/concurrency"
	"github.com/ncobase/talentsearch/data/search"
	"github.com/ncobase/talentsearch/ecode"
	"github.com/ncobase/talentsearch/logging/logger"
	"github.com/ncobase/talentsearch/net/resp"
	"github.com/ncobase/talentsearch/talent"
	"github.com/ncobase/talentsearch/validator"
	"github.com/sirupsen/logrus"
)

// TalentSearcher runs talent searches.
type TalentSearcher interface {
	Search(ctx context.Context, defaultIndexes []string, params talent.Params) []int64
}

// HealthChecker reports per-engine health.
type HealthChecker interface {
	Health(ctx context.Context) map[search.Engine]error
}

// Stats exposes collected metrics and records health checks.
type Stats interface {
	HealthCheck(component string, healthy bool)
	GetStats() map[string]any
}

// TalentQuery is the query string accepted by the talent search route.
type TalentQuery struct {
	CompanyID         []int64  `form:"company_id" validate:"max=100,dive,gt=0"`
	WorkRoles         []string `form:"work_roles" validate:"max=50,dive,required,max=128"`
	WorkLanguages     []string `form:"work_languages" validate:"max=50,dive,required,max=128"`
	WorkExperience    []string `form:"work_experience" validate:"max=50,dive,required,max=128"`
	WorkLocations     []string `form:"work_locations" validate:"max=50,dive,required,max=128"`
	WorkAuthorization []string `form:"work_authorization" validate:"max=50,dive,required,max=128"`
	PresentedTalents  []int64  `form:"presented_talents" validate:"max=1000,dive,gt=0"`
	Epoch             *int64   `form:"epoch" validate:"omitempty,gte=0"`
	Index             string   `form:"index" validate:"max=255"`
}

// Params converts the query into search parameters, leaving out what the
// caller did not send.
func (q *TalentQuery) Params() talent.Params {
	p := talent.Params{}
	setInts := func(key string, v []int64) {
		if len(v) > 0 {
			p[key] = v
		}
	}
	setStrings := func(key string, v []string) {
		if len(v) > 0 {
			p[key] = v
		}
	}

	setInts(talent.ParamCompanyID, q.CompanyID)
	setStrings(talent.ParamWorkRoles, q.WorkRoles)
	setStrings(talent.ParamWorkLanguages, q.WorkLanguages)
	setStrings(talent.ParamWorkExperience, q.WorkExperience)
	setStrings(talent.ParamWorkLocations, q.WorkLocations)
	setStrings(talent.ParamWorkAuthorization, q.WorkAuthorization)
	setInts(talent.ParamPresentedTalents, q.PresentedTalents)
	if q.Epoch != nil {
		p[talent.ParamEpoch] = *q.Epoch
	}
	if q.Index != "" {
		p[talent.ParamIndex] = q.Index
	}
	return p
}

// Handler serves the HTTP routes.
type Handler struct {
	searcher TalentSearcher
	health   HealthChecker
	stats    Stats
	logger   *logger.Logger
	limiter  *concurrency.Limiter

	indexes atomic.Pointer[[]string]
}

// NewHandler creates a handler searching defaultIndexes. health and stats
// may be nil.
func NewHandler(searcher TalentSearcher, health HealthChecker, stats Stats, defaultIndexes []string, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.StdLogger()
	}
	h := &Handler{
		searcher: searcher,
		health:   health,
		stats:    stats,
		logger:   l,
	}
	h.SetDefaultIndexes(defaultIndexes)
	return h
}

// SetLimiter bounds concurrent talent searches. Requests that cannot get
// a slot are answered with 503.
func (h *Handler) SetLimiter(l *concurrency.Limiter) {
	h.limiter = l
}

// SetDefaultIndexes replaces the indexes searched when a request names none.
func (h *Handler) SetDefaultIndexes(indexes []string) {
	cloned := slices.Clone(indexes)
	h.indexes.Store(&cloned)
}

// DefaultIndexes returns the indexes searched when a request names none.
func (h *Handler) DefaultIndexes() []string {
	return slices.Clone(*h.indexes.Load())
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/talents", h.SearchTalents)
	}
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)
}

// SearchTalents handles talent search.
func (h *Handler) SearchTalents(c *gin.Context) {
	ctx := c.Request.Context()

	var q TalentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.EntryWithFields(ctx, logrus.Fields{"error": err}).Warn("invalid talent query")
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	if errs := validator.ValidateStruct(&q); len(errs) > 0 {
		resp.Fail(c.Writer, resp.InvalidParams(ecode.Text(ecode.ParamErr), errs))
		return
	}

	if h.limiter != nil {
		if err := h.limiter.Acquire(ctx); err != nil {
			h.logger.EntryWithFields(ctx, logrus.Fields{"error": err}).Warn("talent search rejected")
			resp.Fail(c.Writer, resp.ServiceUnavailable(ecode.Unavailable("talent search")))
			return
		}
		defer h.limiter.Release()
	}

	ids := h.searcher.Search(ctx, h.DefaultIndexes(), q.Params())
	resp.Success(c.Writer, map[string]any{"ids": ids})
}

// Health reports engine health. It answers 503 when no engine is healthy.
func (h *Handler) Health(c *gin.Context) {
	if h.health == nil {
		resp.Fail(c.Writer, resp.ServiceUnavailable(ecode.Unavailable("search engine")))
		return
	}

	results := h.health.Health(c.Request.Context())
	engines := make(map[string]string, len(results))
	healthy := 0
	for engine, err := range results {
		ok := err == nil
		if h.stats != nil {
			h.stats.HealthCheck(string(engine), ok)
		}
		if ok {
			healthy++
			engines[string(engine)] = "ok"
			continue
		}
		engines[string(engine)] = err.Error()
	}

	switch {
	case healthy == 0:
		resp.Fail(c.Writer, resp.ServiceUnavailable(ecode.Unavailable("search engine"), engines))
	case healthy < len(results):
		resp.Success(c.Writer, map[string]any{"status": "degraded", "engines": engines})
	default:
		resp.Success(c.Writer, map[string]any{"status": "healthy", "engines": engines})
	}
}

// Metrics returns collector statistics.
func (h *Handler) Metrics(c *gin.Context) {
	if h.stats == nil {
		resp.Fail(c.Writer, resp.NotFound(ecode.NotExist("metrics")))
		return
	}
	stats := h.stats.GetStats()
	if h.limiter != nil {
		stats["limiter"] = h.limiter.Stats()
	}
	resp.WithStatusCode(c.Writer, http.StatusOK, stats)
}
