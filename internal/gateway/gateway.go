// Package gateway provides the API gateway that routes requests to handlers.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/facemap/backend/internal/config"
	"github.com/facemap/backend/internal/models"
)

// Upper bound on how long the handler may take to start answering.
const responseHeaderTimeout = 30 * time.Second

// route is one handler endpoint the gateway forwards.
type route struct {
	method string
	path   string
}

// Every handler endpoint under /api/v1. Anything else is answered by the
// gateway itself and never reaches the handler.
var proxiedRoutes = []route{
	{http.MethodGet, "/zones"},
	{http.MethodGet, "/danger-zones"},
	{http.MethodGet, "/muscles/classify"},
	{http.MethodPost, "/points/parse"},
	{http.MethodPost, "/mapping/to-3d"},
	{http.MethodPost, "/mapping/from-3d"},
	{http.MethodPost, "/mapping/check"},
	{http.MethodPost, "/validations"},
}

// Gateway forwards mapping and validation requests to the handler service.
type Gateway struct {
	cfg    *config.Config
	logger *zap.Logger
	proxy  *httputil.ReverseProxy
}

// NewGateway creates a new API gateway. It fails when the handler URL is not
// an absolute http(s) URL.
func NewGateway(cfg *config.Config, logger *zap.Logger) (*Gateway, error) {
	target, err := url.Parse(cfg.HandlerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid handler URL: %w", err)
	}
	if (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, fmt.Errorf("invalid handler URL %q: want an absolute http(s) URL", cfg.HandlerURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = responseHeaderTimeout

	g := &Gateway{cfg: cfg, logger: logger}
	g.proxy = &httputil.ReverseProxy{
		// Rewrite runs after hop-by-hop headers are stripped from the
		// outbound request; the path already carries the /api/v1 prefix.
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			if pr.Out.ContentLength != 0 && pr.Out.Header.Get("Content-Type") == "" {
				pr.Out.Header.Set("Content-Type", "application/json")
			}
		},
		Transport:    transport,
		ErrorHandler: g.proxyError,
	}
	return g, nil
}

// RegisterRoutes registers the gateway routes on the given router group.
func (g *Gateway) RegisterRoutes(rg *gin.RouterGroup) {
	for _, r := range proxiedRoutes {
		rg.Handle(r.method, r.path, g.proxyToHandler)
	}
}

// proxyToHandler forwards a request to the handler service.
func (g *Gateway) proxyToHandler(c *gin.Context) {
	g.logger.Debug("Proxying request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)

	// ReverseProxy only falls back to CloseNotifier when the context cannot be
	// cancelled, and gin's writer does not always support it.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	g.proxy.ServeHTTP(c.Writer, c.Request.WithContext(ctx))
}

// proxyError maps transport failures to JSON error responses: a refused
// connection means the handler is down, anything else is a bad gateway.
func (g *Gateway) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	g.logger.Error("Failed to proxy request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	status, body := http.StatusBadGateway, models.ErrorResponse{
		Error:   "proxy_error",
		Message: "failed to reach handler service",
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		status, body = http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "service_unavailable",
			Message: "handler service is not available",
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// HealthCheck returns a health check handler.
func (g *Gateway) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"role":    g.cfg.Role,
		"service": "facemap",
	})
}
