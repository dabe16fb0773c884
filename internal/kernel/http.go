// Package kernel assembles the HTTP stack: global middleware in a fixed
// order, then the route table.
package kernel

import (
	"time"

	"github.com/shashiranjanraj/repwear/app/routes"
	"github.com/shashiranjanraj/repwear/config"
	"github.com/shashiranjanraj/repwear/pkg/metrics"
	"github.com/shashiranjanraj/repwear/pkg/middleware"
	"github.com/shashiranjanraj/repwear/pkg/reqid"
	"github.com/shashiranjanraj/repwear/pkg/router"
)

// NewHTTPKernel builds the router with the global middleware chain.
//
// Ordering matters: metrics wraps everything so latency includes the full
// chain; recovery sits above reqid/logger so a panic inside them is still
// caught; reqid must run before the request logger.
func NewHTTPKernel(c routes.Controllers) *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(corsOptions()),
		middleware.RateLimit(200, time.Minute),
	)

	routes.Register(r, c)
	return r
}

func corsOptions() middleware.CORSOptions {
	opts := middleware.DefaultCORSOptions()
	if config.AppEnv() == "production" {
		opts.AllowedOrigins = []string{config.FrontendURL()}
	}
	return opts
}
