// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	configDir string // Directory for configuration files
	logsDir   string // Directory for log files
)

func init() {
	if os.Geteuid() == 0 {
		configDir = "/etc/ferret"
	}

	// Otherwise, use user config directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	configDir = filepath.Join(homeDir, ".ferret")
	logsDir = filepath.Join(configDir, "logs")

	// Ensure the directories exist
	if err := EnsureDirectories(); err != nil {
		panic(fmt.Sprintf("failed to ensure configuration directories: %v", err))
	}
}

// GetConfigDir returns the appropriate configuration directory
// If running as root, it returns the system config directory
// Otherwise, it returns the user config directory
func GetConfigDir() string {
	return configDir
}

// GetLogsDir returns the directory for log files
func GetLogsDir() string {
	return logsDir
}

// EnsureDirectories creates necessary directories if they do not exist
func EnsureDirectories() error {
	dirs := []string{
		configDir,
		logsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
