// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stratastor/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ferret/pkg/nmcli"
)

// fakeExecutor replays scripted results so handlers exercise the real
// manager without touching nmcli.
type fakeExecutor struct {
	results  []*nmcli.Result
	commands []string
}

func (f *fakeExecutor) Run(_ context.Context, args []string) (*nmcli.Result, error) {
	f.commands = append(f.commands, strings.Join(args, " "))
	if len(f.results) == 0 {
		return &nmcli.Result{}, nil
	}
	result := f.results[0]
	f.results = f.results[1:]
	return result, nil
}

// setupAPITest wires a handler over a manager backed by the fake executor.
func setupAPITest(t *testing.T, exec *fakeExecutor) *gin.Engine {
	t.Helper()

	log, err := logger.NewTag(logger.Config{LogLevel: "debug"}, "test.nmcli.api")
	require.NoError(t, err, "Failed to create logger")

	manager, err := nmcli.NewManager(log, exec, "")
	require.NoError(t, err, "Failed to create nmcli manager")

	handler := NewNetworkHandler(manager, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1/ferret")
	network := v1.Group("/network")
	handler.RegisterRoutes(network)

	return router
}

// makeRequest is a helper function to make HTTP requests
func makeRequest(
	t *testing.T,
	router *gin.Engine,
	method, path string,
	payload interface{},
) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		require.NoError(t, err, "Failed to marshal request payload")
		body = bytes.NewBuffer(jsonPayload)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err, "Failed to create request")
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var response APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestListConnectionsEndpoint(t *testing.T) {
	exec := &fakeExecutor{results: []*nmcli.Result{{
		Stdout: "lan:uuid-1:802-3-ethernet:eth0\nwifi:uuid-2:802-11-wireless:\n",
	}}}
	router := setupAPITest(t, exec)

	w := makeRequest(t, router, http.MethodGet, "/api/v1/ferret/network/connections", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.True(t, response.Success)

	result := response.Result.(map[string]interface{})
	assert.Equal(t, float64(2), result["count"])
}

func TestListConnectionsEndpointFailure(t *testing.T) {
	exec := &fakeExecutor{results: []*nmcli.Result{{
		Stderr:   "Error: NetworkManager is not running.",
		ExitCode: 8,
	}}}
	router := setupAPITest(t, exec)

	w := makeRequest(t, router, http.MethodGet, "/api/v1/ferret/network/connections", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeResponse(t, w)
	assert.False(t, response.Success)
	require.NotNil(t, response.Error)
	assert.Equal(t, "NMCLI", response.Error.Domain)
	assert.Equal(t, "8", response.Error.Meta["exit_code"])
}

func TestAddEthernetEndpoint(t *testing.T) {
	exec := &fakeExecutor{}
	router := setupAPITest(t, exec)

	payload := map[string]interface{}{
		"name":        "eth-test",
		"ifname":      "eth0",
		"autoconnect": true,
		"mac":         "aa:bb:cc:dd:ee:ff",
	}
	w := makeRequest(t, router, http.MethodPost, "/api/v1/ferret/network/connections/ethernet", payload)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, exec.commands, 1)
	assert.Equal(t,
		"nmcli connection add type ethernet con-name eth-test ifname eth0 autoconnect yes mac aa:bb:cc:dd:ee:ff",
		exec.commands[0])
}

func TestAddVLANEndpoint(t *testing.T) {
	exec := &fakeExecutor{}
	router := setupAPITest(t, exec)

	payload := map[string]interface{}{
		"name":   "vlan100",
		"device": "eth0",
		"id":     100,
	}
	w := makeRequest(t, router, http.MethodPost, "/api/v1/ferret/network/connections/vlan", payload)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, exec.commands, 1)
	assert.Equal(t,
		"nmcli connection add type vlan con-name vlan100 ifname eth0 dev eth0 id 100",
		exec.commands[0])
}

func TestSetConnectionStateEndpoint(t *testing.T) {
	t.Run("ValidState", func(t *testing.T) {
		exec := &fakeExecutor{}
		router := setupAPITest(t, exec)

		w := makeRequest(t, router, http.MethodPut,
			"/api/v1/ferret/network/connections/lan/state",
			map[string]string{"state": "up"})

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, exec.commands, 1)
		assert.Equal(t, "nmcli connection up lan", exec.commands[0])
	})

	t.Run("InvalidState", func(t *testing.T) {
		exec := &fakeExecutor{}
		router := setupAPITest(t, exec)

		w := makeRequest(t, router, http.MethodPut,
			"/api/v1/ferret/network/connections/lan/state",
			map[string]string{"state": "restart"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, exec.commands)
	})

	t.Run("MissingBody", func(t *testing.T) {
		exec := &fakeExecutor{}
		router := setupAPITest(t, exec)

		w := makeRequest(t, router, http.MethodPut,
			"/api/v1/ferret/network/connections/lan/state", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestModifyConnectionEndpoint(t *testing.T) {
	exec := &fakeExecutor{}
	router := setupAPITest(t, exec)

	payload := map[string]interface{}{
		"properties": []map[string]string{
			{"name": "+ipv4.addresses", "value": "192.168.23.2/24"},
			{"name": "ipv4.gateway", "value": "192.168.23.1"},
		},
	}
	w := makeRequest(t, router, http.MethodPut, "/api/v1/ferret/network/connections/lan", payload)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, exec.commands, 1)
	assert.Equal(t,
		"nmcli connection modify lan +ipv4.addresses 192.168.23.2/24 ipv4.gateway 192.168.23.1",
		exec.commands[0])
}

func TestDeleteConnectionEndpoint(t *testing.T) {
	exec := &fakeExecutor{}
	router := setupAPITest(t, exec)

	w := makeRequest(t, router, http.MethodDelete, "/api/v1/ferret/network/connections/eth-test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, exec.commands, 1)
	assert.Equal(t, "nmcli connection delete eth-test", exec.commands[0])
}

func TestListDevicesEndpoint(t *testing.T) {
	exec := &fakeExecutor{results: []*nmcli.Result{
		{Stdout: "eth0\n"},
		{Stdout: "ethernet\n52:54:00:12:34:56\n1500\n"},
	}}
	router := setupAPITest(t, exec)

	w := makeRequest(t, router, http.MethodGet, "/api/v1/ferret/network/devices", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.True(t, response.Success)

	result := response.Result.(map[string]interface{})
	assert.Equal(t, float64(1), result["count"])

	devices := result["devices"].([]interface{})
	device := devices[0].(map[string]interface{})
	assert.Equal(t, "eth0", device["name"])
	assert.Equal(t, "52:54:00:12:34:56", device["mac"])
}

func TestDeleteDeviceEndpoint(t *testing.T) {
	exec := &fakeExecutor{}
	router := setupAPITest(t, exec)

	w := makeRequest(t, router, http.MethodDelete, "/api/v1/ferret/network/devices/bond0", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, exec.commands, 1)
	assert.Equal(t, "nmcli device delete bond0", exec.commands[0])
}
