package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stratastor/logger"

	"github.com/stratastor/ferret/config"
	"github.com/stratastor/ferret/internal/constants"
	"github.com/stratastor/ferret/pkg/nmcli"
	"github.com/stratastor/ferret/pkg/nmcli/api"
)

// registerNetworkRoutes wires the nmcli manager and its REST handler under
// the versioned network base path.
func registerNetworkRoutes(engine *gin.Engine) error {
	cfg := config.GetConfig()

	l, err := logger.NewTag(config.NewLoggerConfig(cfg), "nmcli")
	if err != nil {
		return err
	}

	timeout, err := time.ParseDuration(cfg.NMCLI.Timeout)
	if err != nil {
		l.Warn("Invalid nmcli timeout, using default", "timeout", cfg.NMCLI.Timeout)
		timeout = 0
	}

	executor := nmcli.NewLocalExecutor(l, cfg.NMCLI.UseSudo, timeout)

	manager, err := nmcli.NewManager(l, executor, cfg.NMCLI.Binary)
	if err != nil {
		return err
	}

	handler := api.NewNetworkHandler(manager, l)

	network := engine.Group(constants.APINetwork)
	handler.RegisterRoutes(network)

	return nil
}
