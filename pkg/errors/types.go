// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import "net/http"

const (
	DomainConfig    Domain = "CONFIG"
	DomainServer    Domain = "SERVER"
	DomainCommand   Domain = "CMD"
	DomainHealth    Domain = "HEALTH"
	DomainLifecycle Domain = "LIFECYCLE"
	DomainMisc      Domain = "MISC"
)

// ErrorCode represents unique error identifiers
type ErrorCode int

// Domain represents the subsystem where the error originated
type Domain string

type FerretError struct {
	Code       ErrorCode `json:"code"`
	Domain     Domain    `json:"domain"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`

	// Metadata carries contextual information that doesn't fit the standard
	// error fields but is valuable for API responses, structured logging and
	// debugging (e.g. the exact command line, exit code and captured output
	// of a failed nmcli invocation).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Error code ranges:
// 1000-1099: Configuration errors
// 1100-1199: Server errors
// 1300-1399: Command execution
// 1400-1499: Health check
// 1500-1599: Lifecycle management
// 1600-1699: Ferret errors
// 2000-2099: NMCLI operations
const (
	// Configuration Errors (1000-1099)
	ConfigNotFound       = 1000 + iota // Config file not found
	ConfigInvalid                      // Invalid config format
	ConfigLoadFailed                   // Failed to load config
	ConfigWriteFailed                  // Failed to write config
	ConfigValidationFailed             // Config validation failed
	ConfigMarshalFailed                // Config serialization failed
	ConfigUnmarshalFailed              // Config deserialization failed
)

const (
	// Server Errors (1100-1199)
	ServerStart             = 1100 + iota // Failed to start server
	ServerShutdown                        // Error during shutdown
	ServerBind                            // Failed to bind port
	ServerTimeout                         // Operation timeout
	ServerMiddleware                      // Middleware error
	ServerRequestValidation               // Request validation failed
	ServerContextCancelled                // Context cancelled
	ServerInternalError                   // Internal server error
)

const (
	// Command Execution (1300-1399)
	CommandNotFound     = 1300 + iota // Command not found
	CommandExecution                  // Execution failed
	CommandTimeout                    // Command timed out
	CommandPermission                 // Permission denied
	CommandInvalidInput               // Invalid command input
	CommandOutputParse                // Output parsing failed
	CommandPipe                       // Command pipe error
)

const (
	// Health Check (1400-1499)
	HealthCheckFailed   = 1400 + iota // Health check failed
	HealthCheckTimeout                // Health check timed out
	HealthCheckEndpoint               // Endpoint error
)

const (
	// Lifecycle Management (1500-1599)
	LifecyclePID      = 1500 + iota // PID file operation failed
	LifecycleShutdown               // Shutdown process error
	LifecycleSignal                 // Signal handling error
	LifecycleDaemon                 // Daemon operation failed
)

const (
	// Ferret Errors (1600-1699)
	FerretMisc    = 1600 + iota // Miscellaneous program error
	NotFoundError               // Not found error
	LoggerError                 // Logger error
)

var errorDefinitions = map[ErrorCode]struct {
	message    string
	domain     Domain
	httpStatus int
}{
	// Configuration errors
	ConfigNotFound:   {"Configuration file not found", DomainConfig, http.StatusNotFound},
	ConfigInvalid:    {"Invalid configuration format", DomainConfig, http.StatusBadRequest},
	ConfigLoadFailed: {"Failed to load configuration", DomainConfig, http.StatusInternalServerError},
	ConfigWriteFailed: {
		"Failed to write configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigValidationFailed: {"Configuration validation failed", DomainConfig, http.StatusBadRequest},
	ConfigMarshalFailed: {
		"Failed to serialize configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},
	ConfigUnmarshalFailed: {
		"Failed to deserialize configuration",
		DomainConfig,
		http.StatusInternalServerError,
	},

	// Server errors
	ServerStart:             {"Failed to start server", DomainServer, http.StatusInternalServerError},
	ServerShutdown:          {"Error during server shutdown", DomainServer, http.StatusInternalServerError},
	ServerBind:              {"Failed to bind server port", DomainServer, http.StatusInternalServerError},
	ServerTimeout:           {"Server operation timed out", DomainServer, http.StatusGatewayTimeout},
	ServerMiddleware:        {"Middleware execution failed", DomainServer, http.StatusInternalServerError},
	ServerRequestValidation: {"Request validation failed", DomainServer, http.StatusBadRequest},
	ServerContextCancelled: {
		"Server context cancelled",
		DomainServer,
		http.StatusServiceUnavailable,
	},
	ServerInternalError: {"Internal server error", DomainServer, http.StatusInternalServerError},

	// Command execution errors
	CommandNotFound:  {"Command not found", DomainCommand, http.StatusNotFound},
	CommandExecution: {"Command execution failed", DomainCommand, http.StatusBadRequest},
	CommandTimeout:   {"Command execution timed out", DomainCommand, http.StatusGatewayTimeout},
	CommandPermission: {
		"Permission denied executing command",
		DomainCommand,
		http.StatusForbidden,
	},
	CommandInvalidInput: {"Invalid command input", DomainCommand, http.StatusBadRequest},
	CommandOutputParse: {
		"Failed to parse command output",
		DomainCommand,
		http.StatusInternalServerError,
	},
	CommandPipe: {"Command pipe operation failed", DomainCommand, http.StatusInternalServerError},

	// Health check errors
	HealthCheckFailed:   {"Health check failed", DomainHealth, http.StatusServiceUnavailable},
	HealthCheckTimeout:  {"Health check timed out", DomainHealth, http.StatusGatewayTimeout},
	HealthCheckEndpoint: {"Health check endpoint error", DomainHealth, http.StatusServiceUnavailable},

	// Lifecycle errors
	LifecyclePID: {
		"PID file operation failed",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleShutdown: {
		"Error during shutdown process",
		DomainLifecycle,
		http.StatusInternalServerError,
	},
	LifecycleSignal: {"Signal handling error", DomainLifecycle, http.StatusInternalServerError},
	LifecycleDaemon: {"Daemon operation failed", DomainLifecycle, http.StatusInternalServerError},

	// Ferret errors
	FerretMisc:    {"Miscellaneous program error", DomainMisc, http.StatusInternalServerError},
	NotFoundError: {"Not found", DomainMisc, http.StatusNotFound},
	LoggerError:   {"Logger error", DomainMisc, http.StatusInternalServerError},
}
