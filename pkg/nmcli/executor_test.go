// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package nmcli

import (
	"strings"
	"testing"
	"time"

	"github.com/stratastor/logger"

	"github.com/stratastor/ferret/pkg/errors"
)

func TestNewLocalExecutorTimeout(t *testing.T) {
	log, err := logger.NewTag(logger.Config{LogLevel: "debug"}, "test")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	e := NewLocalExecutor(log, false, 5*time.Second)
	if e.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", e.timeout)
	}

	// Non-positive timeouts fall back to the default.
	e = NewLocalExecutor(log, false, 0)
	if e.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want DefaultTimeout", e.timeout)
	}
}

func TestValidateArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name: "plain_command",
			args: []string{"nmcli", "connection", "show"},
		},
		{
			name: "absolute_path",
			args: []string{"/usr/bin/nmcli", "device", "show"},
		},
		{
			name:    "empty_vector",
			args:    nil,
			wantErr: true,
		},
		{
			name:    "empty_command_name",
			args:    []string{""},
			wantErr: true,
		},
		{
			name:    "relative_path",
			args:    []string{"./nmcli", "connection", "show"},
			wantErr: true,
		},
		{
			name:    "command_injection_semicolon",
			args:    []string{"nmcli; rm -rf /"},
			wantErr: true,
		},
		{
			name:    "argument_with_pipe",
			args:    []string{"nmcli", "connection", "show|cat"},
			wantErr: true,
		},
		{
			name:    "argument_with_backtick",
			args:    []string{"nmcli", "connection", "add", "con-name", "`id`"},
			wantErr: true,
		},
		{
			name:    "too_many_arguments",
			args:    append([]string{"nmcli"}, make([]string, 70)...),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pad filler args so they pass the character checks.
			for i, a := range tt.args {
				if i > 0 && a == "" {
					tt.args[i] = "x"
				}
			}

			err := validateArgs(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("validateArgs(%v) = nil, want error", tt.args)
				}
				if !errors.HasCode(err, errors.CommandInvalidInput) {
					t.Errorf("validateArgs(%v) code = %v, want CommandInvalidInput",
						tt.args, errors.AsFerretError(err).Code)
				}
			} else if err != nil {
				t.Fatalf("validateArgs(%v) = %v, want nil", tt.args, err)
			}
		})
	}
}

func TestValidateArgsDangerousChars(t *testing.T) {
	for _, c := range strings.Split(dangerousChars, "") {
		if err := validateArgs([]string{"nmcli", "show", "bad" + c}); err == nil {
			t.Errorf("validateArgs accepted dangerous character %q", c)
		}
	}
}
