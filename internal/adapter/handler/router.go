package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	httpmw "github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
	"github.com/johnquangdev/meeting-assistant-client/pkg/middleware"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	sessionHandler *Session
	meetingHandler *Meeting
	sessions       middleware.Snapshotter
	gatherer       prometheus.Gatherer
	speech         string
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, sessionHandler *Session, meetingHandler *Meeting, sessions middleware.Snapshotter, gatherer prometheus.Gatherer, speech string) *Router {
	return &Router{
		cfg:            cfg,
		sessionHandler: sessionHandler,
		meetingHandler: meetingHandler,
		sessions:       sessions,
		gatherer:       gatherer,
		speech:         speech,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1", httpmw.EchoToken(rt.cfg.Server.APIToken))

	rt.setupSessionRoutes(v1)
	rt.setupMeetingRoutes(v1)
}

// setupSessionRoutes configures recording, upload, action item and Q&A routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	if rt.sessionHandler == nil {
		g.Any("/session*", rt.notImplemented)
		return
	}

	sessionGroup := g.Group("/session")
	sessionGroup.GET("", rt.sessionHandler.Get)
	sessionGroup.GET("/view", rt.sessionHandler.View)
	sessionGroup.POST("/start", rt.sessionHandler.Start)
	sessionGroup.POST("/stop", rt.sessionHandler.Stop)
	sessionGroup.POST("/clear", rt.sessionHandler.Clear)

	if rt.sessions != nil {
		g.POST("/uploads", rt.sessionHandler.Upload, middleware.RequireIdle(rt.sessions))
	} else {
		g.POST("/uploads", rt.sessionHandler.Upload)
	}

	g.POST("/action-items/generate", rt.sessionHandler.GenerateActionItems)
	g.POST("/action-items/:id/jira", rt.sessionHandler.CreateJiraTicket)
	g.POST("/qa", rt.sessionHandler.Ask)
}

// setupMeetingRoutes configures backend meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	if rt.meetingHandler == nil {
		g.Any("/meeting/*", rt.notImplemented)
		return
	}

	meetingGroup := g.Group("/meeting")
	meetingGroup.POST("/end", rt.meetingHandler.End)
	meetingGroup.POST("/jira-tasks", rt.meetingHandler.JiraTasks)
	meetingGroup.POST("/post-summary", rt.meetingHandler.PostSummary)

	g.GET("/backend/health", rt.meetingHandler.BackendHealth)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not available",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	body := map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"speech":      rt.speech,
	}
	if rt.sessions != nil {
		if s, err := rt.sessions.Snapshot(c.Request().Context()); err == nil {
			body["state"] = s.State
			body["is_processing"] = s.IsProcessing
		} else {
			body["status"] = "degraded"
		}
	}
	return c.JSON(http.StatusOK, body)
}
