// Package httpapi serves simulations as JSON over HTTP.
package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/adiu19/schedsim/config"
	"github.com/adiu19/schedsim/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// API holds the handlers and the limiter shared by the simulate endpoints.
type API struct {
	limiter *rate.Limiter
}

// New creates an API that admits perSecond simulate/compare requests with the
// given burst. A non-positive perSecond disables limiting.
func New(perSecond float64, burst int) *API {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &API{limiter: rate.NewLimiter(limit, burst)}
}

// Router builds the gin engine with every route registered.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.GET("/policies", a.PoliciesHandler)

	limited := v1.Group("", a.rateLimit())
	limited.POST("/simulate", a.SimulateHandler)
	limited.POST("/compare", a.CompareHandler)
	return r
}

func (a *API) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

type simulateRequest struct {
	Policy  string           `json:"policy" binding:"required"`
	Quantum int              `json:"quantum"`
	Jobs    []config.JobSpec `json:"jobs"`
}

type compareRequest struct {
	Quantum int              `json:"quantum" binding:"required"`
	Jobs    []config.JobSpec `json:"jobs"`
}

// PoliciesHandler lists the supported policies with their menu numbers.
func (a *API) PoliciesHandler(c *gin.Context) {
	out := make([]gin.H, 0, len(scheduler.Policies))
	for i, p := range scheduler.Policies {
		out = append(out, gin.H{
			"number":     i + 1,
			"name":       p.String(),
			"title":      p.Title(),
			"preemptive": p.Preemptive(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"policies": out})
}

// SimulateHandler runs one policy and returns its events and summary.
func (a *API) SimulateHandler(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, err := scheduler.ParsePolicy(req.Policy)
	if err != nil {
		abortWithError(c, err)
		return
	}
	events, err := scheduler.Run(jobsOrDefault(req.Jobs), policy, req.Quantum)
	if err != nil {
		abortWithError(c, err)
		return
	}

	runID := uuid.NewString()
	log.Printf("[httpapi] run=%s policy=%s quantum=%d events=%d", runID, policy, req.Quantum, len(events))
	c.JSON(http.StatusOK, gin.H{
		"run_id":  runID,
		"policy":  policy.String(),
		"quantum": req.Quantum,
		"events":  events,
		"summary": scheduler.Summarize(policy, req.Quantum, events),
	})
}

// CompareHandler runs every policy over the same jobs.
func (a *API) CompareHandler(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sums, err := scheduler.Compare(jobsOrDefault(req.Jobs), req.Quantum)
	if err != nil {
		abortWithError(c, err)
		return
	}

	runID := uuid.NewString()
	log.Printf("[httpapi] run=%s compare quantum=%d", runID, req.Quantum)
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "summaries": sums})
}

func jobsOrDefault(specs []config.JobSpec) []scheduler.Job {
	if len(specs) == 0 {
		specs = config.DefaultJobs()
	}
	return config.ToJobs(specs)
}

func abortWithError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, scheduler.ErrInvalidInput) ||
		errors.Is(err, scheduler.ErrInvalidParameter) ||
		errors.Is(err, scheduler.ErrUnknownPolicy) {
		code = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
