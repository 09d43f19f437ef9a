package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// healthHandler godoc
//
//	@Summary	Health check
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	map[string]string	"All dependencies are up"
//	@Failure	503	{object}	map[string]string	"A dependency is down"
//	@Router		/health [get]
func (s *Server) healthHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 1*time.Second)
	defer cancel()

	stats := map[string]string{"status": "up", "db": "up", "cache": "up"}
	status := http.StatusOK

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error().Err(err).Msg("db down")
		stats["db"] = "down"
		stats["status"] = "down"
		status = http.StatusServiceUnavailable
	}

	if err := s.cache.Ping(ctx); err != nil {
		s.logger.Error().Err(err).Msg("cache down")
		stats["cache"] = "down"
		stats["status"] = "down"
		status = http.StatusServiceUnavailable
	}

	// Pool statistics are only available from a real pool
	if pool, ok := s.db.(*pgxpool.Pool); ok {
		dbStats := pool.Stat()
		stats["open_connections"] = strconv.Itoa(int(dbStats.TotalConns()))
		stats["in_use"] = strconv.Itoa(int(dbStats.AcquiredConns()))
		stats["idle"] = strconv.Itoa(int(dbStats.IdleConns()))
		stats["wait_count"] = strconv.FormatInt(dbStats.EmptyAcquireCount(), 10)
		stats["wait_duration"] = dbStats.EmptyAcquireWaitTime().String()
	}

	return c.JSON(status, stats)
}
