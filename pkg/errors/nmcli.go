// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"maps"
	"net/http"
)

const (
	DomainNMCLI Domain = "NMCLI"
)

// NMCLI error codes (2000-2099)
const (
	// Operation errors (2000-2029)
	NMCLICommandFailed         = 2000 + iota // nmcli command returned non-zero
	NMCLICommandNotFound                     // nmcli binary not found
	NMCLIConnectionList                      // Failed to list connections
	NMCLIConnectionAdd                       // Failed to add connection
	NMCLIConnectionModify                    // Failed to modify connection
	NMCLIConnectionDelete                    // Failed to delete connection
	NMCLIConnectionShow                      // Failed to show connection
	NMCLIConnectionStateChange               // Failed to change connection state
	NMCLIDeviceList                          // Failed to list devices
	NMCLIDeviceModify                        // Failed to modify device
	NMCLIDeviceDelete                        // Failed to delete device
)

const (
	// Validation errors (2030-2059)
	NMCLIInvalidState          = 2030 + iota // Invalid connection state
	NMCLIInvalidConnectionType               // Invalid connection type
	NMCLIInvalidIdentifier                   // Invalid connection/device identifier
	NMCLIInvalidProperty                     // Invalid property name
	NMCLIOutputParse                         // nmcli output parsing failed
	NMCLIInvalidConfiguration                // Invalid manager construction input
)

func init() {
	// Register NMCLI error definitions
	nmcliErrorDefinitions := map[ErrorCode]struct {
		message    string
		domain     Domain
		httpStatus int
	}{
		NMCLICommandFailed: {
			"nmcli command execution failed",
			DomainNMCLI,
			http.StatusInternalServerError,
		},
		NMCLICommandNotFound: {
			"nmcli command not found",
			DomainNMCLI,
			http.StatusNotFound,
		},
		NMCLIConnectionList: {
			"Failed to list connections",
			DomainNMCLI,
			http.StatusInternalServerError,
		},
		NMCLIConnectionAdd: {
			"Failed to add connection",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIConnectionModify: {
			"Failed to modify connection",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIConnectionDelete: {
			"Failed to delete connection",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIConnectionShow: {
			"Failed to show connection",
			DomainNMCLI,
			http.StatusNotFound,
		},
		NMCLIConnectionStateChange: {
			"Failed to change connection state",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIDeviceList: {
			"Failed to list devices",
			DomainNMCLI,
			http.StatusInternalServerError,
		},
		NMCLIDeviceModify: {
			"Failed to modify device",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIDeviceDelete: {
			"Failed to delete device",
			DomainNMCLI,
			http.StatusBadRequest,
		},

		NMCLIInvalidState: {
			"Invalid connection state",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIInvalidConnectionType: {
			"Invalid connection type",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIInvalidIdentifier: {
			"Invalid connection or device identifier",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIInvalidProperty: {
			"Invalid property name",
			DomainNMCLI,
			http.StatusBadRequest,
		},
		NMCLIOutputParse: {
			"Failed to parse nmcli output",
			DomainNMCLI,
			http.StatusInternalServerError,
		},
		NMCLIInvalidConfiguration: {
			"Invalid nmcli manager configuration",
			DomainNMCLI,
			http.StatusInternalServerError,
		},
	}

	// Add NMCLI error definitions to the main error definitions map
	maps.Copy(errorDefinitions, nmcliErrorDefinitions)
}
