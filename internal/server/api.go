// Package server provides the greeter Gin-based HTTP surface:
//   - GET /              plain-text greeting
//   - GET /api/message   single-key JSON message
//   - GET /frontend/*    static frontend files (see static.go)
//   - GET /healthz       liveness probe
package server

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/process"
)

const (
	// HomeGreeting is the body of GET /.
	HomeGreeting = "Hello from the Flask Backend! Navigate to /api/message for a JSON response or /frontend/index.html to see the frontend."
	// Message is the value of the "message" key returned by GET /api/message.
	Message = "Hello from the Python Flask Backend!"
)

var startedAt = time.Now()

// RegisterRoutes wires the greeting, message and health routes.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/", handleHome)

	api := r.Group("/api")
	api.GET("/message", handleMessage)

	r.GET("/healthz", handleHealth)
}

// ── Handlers ──────────────────────────────────────────────────────────────────

func handleHome(c *gin.Context) {
	c.String(http.StatusOK, HomeGreeting)
}

// handleMessage returns the fixed JSON message.
//
//	GET /api/message
//	200 { "message": "Hello from the Python Flask Backend!" }
func handleMessage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": Message})
}

// handleHealth is used by load-balancers / k8s probes. Process stats are
// best-effort; a gopsutil failure only drops the rss_bytes field.
func handleHealth(c *gin.Context) {
	body := gin.H{
		"status":         "ok",
		"time":           time.Now().UTC(),
		"uptime_seconds": int64(time.Since(startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
	}
	if p, err := process.NewProcessWithContext(c.Request.Context(), int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfoWithContext(c.Request.Context()); err == nil {
			body["rss_bytes"] = mi.RSS
		}
	}
	c.JSON(http.StatusOK, body)
}
