package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/domain-gateway/internal/domain"
	"github.com/ErlanBelekov/domain-gateway/internal/metrics"
	"github.com/ErlanBelekov/domain-gateway/internal/transport/http/response"
)

// VersionGate answers 410 for any method and path under the prefix of a
// deprecated generation. It belongs on the engine, not a group: engine
// middleware also runs for requests no route matches, which covers methods
// gin keeps no route tree for.
func VersionGate(generations []domain.Generation) gin.HandlerFunc {
	var retired []domain.Generation
	for _, gen := range generations {
		if gen.Deprecated() {
			retired = append(retired, gen)
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, gen := range retired {
			if path == gen.Prefix || strings.HasPrefix(path, gen.Prefix+"/") {
				metrics.DeprecatedRequestsTotal.WithLabelValues(gen.Name).Inc()
				response.Abort(c, http.StatusGone, errDeprecated)
				return
			}
		}
		c.Next()
	}
}
