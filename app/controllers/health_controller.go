package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/repwear/pkg/cache"
	"github.com/shashiranjanraj/repwear/pkg/mongodb"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type HealthController struct {
	conn *mongodb.Conn
}

func NewHealthController(conn *mongodb.Conn) *HealthController {
	return &HealthController{conn: conn}
}

// Health reports liveness of the API and its backing stores. Mongo
// being down fails the check; Redis being down only degrades it.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"api": "ok", "mongo": "ok", "redis": "ok"}

	if err := c.conn.HealthCheck(r.Context()); err != nil {
		status["mongo"] = "down"
		response.Error(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	if cache.RDB == nil {
		status["redis"] = "down"
	} else if err := cache.RDB.Ping(r.Context()).Err(); err != nil {
		status["redis"] = "down"
	}

	response.Success(w, "", status)
}
