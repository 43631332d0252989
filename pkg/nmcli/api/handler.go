// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratastor/logger"

	"github.com/stratastor/ferret/pkg/errors"
	"github.com/stratastor/ferret/pkg/nmcli"
)

// NetworkHandler handles REST API requests for NetworkManager operations
type NetworkHandler struct {
	manager nmcli.Manager
	logger  logger.Logger
}

// APIResponse represents a standardized API response format
type APIResponse struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError represents error information in API responses
type APIError struct {
	Code    int                    `json:"code"`
	Domain  string                 `json:"domain"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// StateRequest is the body of PUT /connections/:id/state.
type StateRequest struct {
	State nmcli.ConnectionState `json:"state" binding:"required"`
}

// ModifyRequest is the body of PUT /connections/:id and PUT /devices/:name.
type ModifyRequest struct {
	Properties []nmcli.Property `json:"properties" binding:"required"`
}

// NewNetworkHandler creates a new network API handler
func NewNetworkHandler(manager nmcli.Manager, logger logger.Logger) *NetworkHandler {
	return &NetworkHandler{
		manager: manager,
		logger:  logger,
	}
}

// RegisterRoutes registers the NetworkManager routes
func (h *NetworkHandler) RegisterRoutes(router *gin.RouterGroup) {
	connections := router.Group("/connections")
	{
		connections.GET("", h.ListConnections)
		connections.GET("/:id", h.ShowConnection)
		connections.POST("/ethernet", h.AddEthernetConnection)
		connections.POST("/bond", h.AddBond)
		connections.POST("/slave", h.AddSlave)
		connections.POST("/vlan", h.AddVLAN)
		connections.POST("/dummy", h.AddDummy)
		connections.PUT("/:id", h.ModifyConnection)
		connections.PUT("/:id/state", h.SetConnectionState)
		connections.DELETE("/:id", h.DeleteConnection)
	}

	devices := router.Group("/devices")
	{
		devices.GET("", h.ListDevices)
		devices.PUT("/:name", h.ModifyDevice)
		devices.DELETE("/:name", h.DeleteDevice)
	}
}

// sendSuccess sends a successful response with the standardized format
func (h *NetworkHandler) sendSuccess(c *gin.Context, statusCode int, result interface{}) {
	response := APIResponse{
		Success: true,
		Result:  result,
	}
	c.JSON(statusCode, response)
}

// sendError sends an error response with the standardized format
func (h *NetworkHandler) sendError(c *gin.Context, err error) {
	response := APIResponse{
		Success: false,
	}

	if ferretErr, ok := err.(*errors.FerretError); ok {
		h.logger.Error("Network API error",
			"error", err,
			"code", ferretErr.Code,
			"domain", ferretErr.Domain,
			"path", c.Request.URL.Path)

		response.Error = &APIError{
			Code:    int(ferretErr.Code),
			Domain:  string(ferretErr.Domain),
			Message: ferretErr.Message,
			Details: ferretErr.Details,
		}

		if len(ferretErr.Metadata) > 0 {
			response.Error.Meta = make(map[string]interface{})
			for k, v := range ferretErr.Metadata {
				response.Error.Meta[k] = v
			}
		}

		c.JSON(ferretErr.HTTPStatus, response)
		return
	}

	// Fallback for non-FerretError
	h.logger.Error("Network API error", "error", err, "path", c.Request.URL.Path)
	response.Error = &APIError{
		Code:    500,
		Domain:  "NMCLI",
		Message: "Internal server error",
		Details: err.Error(),
	}
	c.JSON(http.StatusInternalServerError, response)
}

// ListConnections handles GET /connections
func (h *NetworkHandler) ListConnections(c *gin.Context) {
	ctx := c.Request.Context()

	connections, err := h.manager.ListConnections(ctx)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"connections": connections,
		"count":       len(connections),
	})
}

// ShowConnection handles GET /connections/:id
func (h *NetworkHandler) ShowConnection(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	details, err := h.manager.ShowConnection(ctx, id)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"connection": id,
		"details":    details,
	})
}

// AddEthernetConnection handles POST /connections/ethernet
func (h *NetworkHandler) AddEthernetConnection(c *gin.Context) {
	ctx := c.Request.Context()

	var cfg nmcli.EthernetConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.AddEthernetConnection(ctx, cfg); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, map[string]interface{}{
		"message":    "Connection created successfully",
		"connection": cfg.Name,
	})
}

// AddBond handles POST /connections/bond
func (h *NetworkHandler) AddBond(c *gin.Context) {
	ctx := c.Request.Context()

	var cfg nmcli.BondConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.AddBond(ctx, cfg); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, map[string]interface{}{
		"message":    "Bond created successfully",
		"connection": cfg.Name,
	})
}

// AddSlave handles POST /connections/slave
func (h *NetworkHandler) AddSlave(c *gin.Context) {
	ctx := c.Request.Context()

	var cfg nmcli.SlaveConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.AddSlave(ctx, cfg); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, map[string]interface{}{
		"message":    "Slave created successfully",
		"connection": cfg.Name,
		"master":     cfg.Master,
	})
}

// AddVLAN handles POST /connections/vlan
func (h *NetworkHandler) AddVLAN(c *gin.Context) {
	ctx := c.Request.Context()

	var cfg nmcli.VLANConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.AddVLAN(ctx, cfg); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, map[string]interface{}{
		"message":    "VLAN created successfully",
		"connection": cfg.Name,
		"vlan_id":    cfg.ID,
	})
}

// AddDummy handles POST /connections/dummy
func (h *NetworkHandler) AddDummy(c *gin.Context) {
	ctx := c.Request.Context()

	var cfg nmcli.DummyConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.AddDummy(ctx, cfg); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, map[string]interface{}{
		"message":    "Dummy connection created successfully",
		"connection": cfg.Name,
	})
}

// ModifyConnection handles PUT /connections/:id
func (h *NetworkHandler) ModifyConnection(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var req ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.ModifyConnection(ctx, id, req.Properties); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"message":    "Connection modified successfully",
		"connection": id,
	})
}

// SetConnectionState handles PUT /connections/:id/state
func (h *NetworkHandler) SetConnectionState(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.SetConnectionState(ctx, id, req.State); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"message":    "Connection state updated successfully",
		"connection": id,
		"state":      req.State,
	})
}

// DeleteConnection handles DELETE /connections/:id
func (h *NetworkHandler) DeleteConnection(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if err := h.manager.DeleteConnection(ctx, id); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"message":    "Connection deleted successfully",
		"connection": id,
	})
}

// ListDevices handles GET /devices
func (h *NetworkHandler) ListDevices(c *gin.Context) {
	ctx := c.Request.Context()

	devices, err := h.manager.ListDevices(ctx)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"devices": devices,
		"count":   len(devices),
	})
}

// ModifyDevice handles PUT /devices/:name
func (h *NetworkHandler) ModifyDevice(c *gin.Context) {
	name := c.Param("name")
	ctx := c.Request.Context()

	var req ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, errors.Wrap(err, errors.ServerRequestValidation))
		return
	}

	if err := h.manager.ModifyDevice(ctx, name, req.Properties); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"message": "Device modified successfully",
		"device":  name,
	})
}

// DeleteDevice handles DELETE /devices/:name
func (h *NetworkHandler) DeleteDevice(c *gin.Context) {
	name := c.Param("name")
	ctx := c.Request.Context()

	if err := h.manager.DeleteDevice(ctx, name); err != nil {
		h.sendError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, map[string]interface{}{
		"message": "Device deleted successfully",
		"device":  name,
	})
}
