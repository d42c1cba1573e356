package httpserver

import (
	"net/http"

	"git.home.luguber.info/inful/sitebuilder/internal/build"
	"git.home.luguber.info/inful/sitebuilder/internal/server/handlers"
)

// Options carries the collaborators the API routes call into.
type Options struct {
	Generator handlers.SiteGenerator
	Builder   build.Builder
	Inventory handlers.SiteInventory

	// Optional: Prometheus exposition mounted at /metrics.
	PrometheusHandler http.Handler
}
