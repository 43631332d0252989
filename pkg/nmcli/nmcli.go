// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package nmcli builds and executes nmcli command lines for NetworkManager
// hosts. Commands are composed as strings, shell-word-split, and handed to an
// injected Executor; non-zero exits surface as typed errors carrying the full
// command, exit code and captured output.
package nmcli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kballard/go-shellquote"
	"github.com/stratastor/ferret/pkg/errors"
	"github.com/stratastor/logger"
)

// DefaultBinary is the nmcli binary invoked when none is configured.
const DefaultBinary = "nmcli"

// manager implements Manager on top of an Executor.
type manager struct {
	logger   logger.Logger
	executor Executor
	binary   string
}

// NewManager creates an nmcli manager. binary may be empty to use
// DefaultBinary; pass an absolute path when PATH can't be trusted.
func NewManager(log logger.Logger, executor Executor, binary string) (Manager, error) {
	if log == nil {
		return nil, errors.New(errors.NMCLIInvalidConfiguration, "logger cannot be nil")
	}
	if executor == nil {
		return nil, errors.New(errors.NMCLIInvalidConfiguration, "executor cannot be nil")
	}
	if binary == "" {
		binary = DefaultBinary
	}

	return &manager{
		logger:   log,
		executor: executor,
		binary:   binary,
	}, nil
}

// execute tokenizes command with shell-word splitting, runs it through the
// executor, and returns stdout. A non-zero exit logs the full
// command/rc/stdout/stderr quadruple and returns NMCLICommandFailed carrying
// the same context.
func (m *manager) execute(ctx context.Context, command string) (string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return "", errors.Wrap(err, errors.CommandInvalidInput).
			WithMetadata("command", command)
	}

	result, err := m.executor.Run(ctx, args)
	if err != nil {
		return "", errors.Wrap(err, errors.NMCLICommandFailed).
			WithMetadata("command", command)
	}

	if result.ExitCode != 0 {
		m.logger.Error("nmcli command failed",
			"cmd", command,
			"exit_code", result.ExitCode,
			"stdout", result.Stdout,
			"stderr", result.Stderr)

		return "", errors.New(errors.NMCLICommandFailed, result.Stderr).
			WithMetadata("command", command).
			WithMetadata("exit_code", strconv.Itoa(result.ExitCode)).
			WithMetadata("stdout", result.Stdout).
			WithMetadata("stderr", result.Stderr)
	}

	return result.Stdout, nil
}

// ListConnections returns every NetworkManager profile as name/uuid/type/
// device records, parsed from a terse colon-delimited listing.
func (m *manager) ListConnections(ctx context.Context) ([]ConnectionInfo, error) {
	command := buildShowCommand(
		m.binary,
		ObjectConnection,
		[]string{"-t", "-f", "NAME,UUID,TYPE,DEVICE"},
		"",
	)

	out, err := m.execute(ctx, command)
	if err != nil {
		return nil, errors.Wrap(err, errors.NMCLIConnectionList)
	}

	return parseConnectionList(out)
}

// ListDevices returns every device known to NetworkManager. One listing call
// fetches the device names; one detail call per device fetches type, MAC and
// MTU. 1 + N round-trips, no batching.
func (m *manager) ListDevices(ctx context.Context) ([]DeviceInfo, error) {
	namesCmd := buildShowCommand(
		m.binary,
		ObjectDevice,
		[]string{"-g", SettingDevice},
		"",
	)

	out, err := m.execute(ctx, namesCmd)
	if err != nil {
		return nil, errors.Wrap(err, errors.NMCLIDeviceList)
	}

	names := parseDeviceNames(out)
	devices := make([]DeviceInfo, 0, len(names))

	for _, name := range names {
		detailCmd := buildShowCommand(
			m.binary,
			ObjectDevice,
			[]string{
				"-e", "no",
				"-g", fmt.Sprintf("%s,%s,%s", SettingType, SettingMAC, SettingMTU),
			},
			name,
		)

		detailOut, err := m.execute(ctx, detailCmd)
		if err != nil {
			return nil, errors.Wrap(err, errors.NMCLIDeviceList).
				WithMetadata("device", name)
		}

		device, err := parseDeviceDetails(name, detailOut)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	return devices, nil
}

// ShowConnection returns the raw `nmcli connection show <id>` text. The
// output is a diagnostic surface; no parsing is attempted.
func (m *manager) ShowConnection(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", errors.New(errors.NMCLIInvalidIdentifier, "connection identifier cannot be empty")
	}

	command := buildShowCommand(m.binary, ObjectConnection, nil, id)

	out, err := m.execute(ctx, command)
	if err != nil {
		return "", errors.Wrap(err, errors.NMCLIConnectionShow).
			WithMetadata("connection", id)
	}

	return out, nil
}

// AddEthernetConnection creates an ethernet connection.
func (m *manager) AddEthernetConnection(ctx context.Context, cfg EthernetConfig) error {
	if err := requireNameAndIfname(cfg.Name, cfg.IfName); err != nil {
		return err
	}

	var properties []Property
	if cfg.MAC != "" {
		properties = append(properties, Property{Name: optMAC, Value: cfg.MAC})
	}
	if cfg.MTU != nil {
		properties = append(properties, Property{Name: optMTU, Value: strconv.Itoa(*cfg.MTU)})
	}

	command := buildCommand(m.binary, commandParams{
		object:      ObjectConnection,
		operation:   OperationAdd,
		name:        cfg.Name,
		conType:     TypeEthernet,
		ifname:      cfg.IfName,
		autoConnect: cfg.AutoConnect,
		save:        cfg.Save,
		properties:  properties,
		ip:          cfg.IP,
	})

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, errors.NMCLIConnectionAdd).
			WithMetadata("connection", cfg.Name)
	}
	return nil
}

// AddBond creates a bond connection. Mode names follow nmcli: balance-rr,
// active-backup, balance-xor, broadcast, 802.3ad, balance-tlb, balance-alb.
func (m *manager) AddBond(ctx context.Context, cfg BondConfig) error {
	if err := requireNameAndIfname(cfg.Name, cfg.IfName); err != nil {
		return err
	}

	var properties []Property
	if cfg.Mode != "" {
		properties = append(properties, Property{Name: optMode, Value: cfg.Mode})
	}
	if cfg.MIIMon != nil {
		properties = append(properties, Property{Name: optMIIMon, Value: strconv.Itoa(*cfg.MIIMon)})
	}

	command := buildCommand(m.binary, commandParams{
		object:      ObjectConnection,
		operation:   OperationAdd,
		name:        cfg.Name,
		conType:     TypeBond,
		ifname:      cfg.IfName,
		autoConnect: cfg.AutoConnect,
		save:        cfg.Save,
		properties:  properties,
		ip:          cfg.IP,
	})

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, errors.NMCLIConnectionAdd).
			WithMetadata("connection", cfg.Name)
	}
	return nil
}

// AddSlave enslaves an interface to a master connection.
func (m *manager) AddSlave(ctx context.Context, cfg SlaveConfig) error {
	if err := requireNameAndIfname(cfg.Name, cfg.IfName); err != nil {
		return err
	}
	if cfg.SlaveType == "" {
		return errors.New(errors.NMCLIInvalidConnectionType, "slave type cannot be empty")
	}
	if cfg.Master == "" {
		return errors.New(errors.NMCLIInvalidIdentifier, "master cannot be empty")
	}

	properties := []Property{{Name: optMaster, Value: cfg.Master}}

	command := buildCommand(m.binary, commandParams{
		object:      ObjectConnection,
		operation:   OperationAdd,
		name:        cfg.Name,
		conType:     cfg.SlaveType,
		ifname:      cfg.IfName,
		autoConnect: cfg.AutoConnect,
		save:        cfg.Save,
		properties:  properties,
	})

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, errors.NMCLIConnectionAdd).
			WithMetadata("connection", cfg.Name)
	}
	return nil
}

// AddVLAN creates a VLAN connection on top of a parent device. A VLAN ID of
// 0 is valid and is rendered.
func (m *manager) AddVLAN(ctx context.Context, cfg VLANConfig) error {
	if err := requireNameAndIfname(cfg.Name, cfg.Device); err != nil {
		return err
	}

	properties := []Property{
		{Name: optDev, Value: cfg.Device},
		{Name: optID, Value: strconv.Itoa(cfg.ID)},
	}
	if cfg.MTU != nil {
		properties = append(properties, Property{Name: optMTU, Value: strconv.Itoa(*cfg.MTU)})
	}

	command := buildCommand(m.binary, commandParams{
		object:      ObjectConnection,
		operation:   OperationAdd,
		name:        cfg.Name,
		conType:     TypeVLAN,
		ifname:      cfg.Device,
		autoConnect: cfg.AutoConnect,
		save:        cfg.Save,
		properties:  properties,
		ip:          cfg.IP,
	})

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, errors.NMCLIConnectionAdd).
			WithMetadata("connection", cfg.Name)
	}
	return nil
}

// AddDummy creates a dummy connection.
func (m *manager) AddDummy(ctx context.Context, cfg DummyConfig) error {
	if err := requireNameAndIfname(cfg.Name, cfg.IfName); err != nil {
		return err
	}

	command := buildCommand(m.binary, commandParams{
		object:      ObjectConnection,
		operation:   OperationAdd,
		name:        cfg.Name,
		conType:     TypeDummy,
		ifname:      cfg.IfName,
		autoConnect: cfg.AutoConnect,
		save:        cfg.Save,
		ip:          cfg.IP,
	})

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, errors.NMCLIConnectionAdd).
			WithMetadata("connection", cfg.Name)
	}
	return nil
}

// ModifyConnection applies an ordered property list to a connection. For
// multi-value properties a '+' prefixed name appends a value and a '-'
// prefixed name removes one, e.g. {"+ipv4.addresses", "192.168.23.2/24"}.
func (m *manager) ModifyConnection(ctx context.Context, id string, properties []Property) error {
	return m.modify(ctx, ObjectConnection, id, properties, errors.NMCLIConnectionModify)
}

// ModifyDevice applies an ordered property list to a device.
func (m *manager) ModifyDevice(ctx context.Context, name string, properties []Property) error {
	return m.modify(ctx, ObjectDevice, name, properties, errors.NMCLIDeviceModify)
}

func (m *manager) modify(
	ctx context.Context,
	object Object,
	id string,
	properties []Property,
	code errors.ErrorCode,
) error {
	if id == "" {
		return errors.New(errors.NMCLIInvalidIdentifier, "identifier cannot be empty")
	}
	if len(properties) == 0 {
		return errors.New(errors.NMCLIInvalidProperty, "no properties to modify")
	}

	command := buildCommand(m.binary, commandParams{
		object:     object,
		operation:  OperationModify,
		name:       id,
		properties: properties,
	})

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, code).WithMetadata("identifier", id)
	}
	return nil
}

// DeleteConnection deletes a connection by name, UUID or path. Deleting a
// nonexistent connection surfaces as NMCLIConnectionDelete; whether that is
// an error is the caller's call.
func (m *manager) DeleteConnection(ctx context.Context, id string) error {
	return m.delete(ctx, ObjectConnection, id, errors.NMCLIConnectionDelete)
}

// DeleteDevice deletes a software device (bond, vlan, dummy...). Hardware
// devices can't be deleted; nmcli reports that as a non-zero exit.
func (m *manager) DeleteDevice(ctx context.Context, name string) error {
	return m.delete(ctx, ObjectDevice, name, errors.NMCLIDeviceDelete)
}

func (m *manager) delete(
	ctx context.Context,
	object Object,
	id string,
	code errors.ErrorCode,
) error {
	if id == "" {
		return errors.New(errors.NMCLIInvalidIdentifier, "identifier cannot be empty")
	}

	command := buildCommand(m.binary, commandParams{
		object:    object,
		operation: OperationDelete,
		name:      id,
	})

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, code).WithMetadata("identifier", id)
	}
	return nil
}

// SetConnectionState brings a connection up or down. Success means nmcli
// exited zero; there is no polling for link-state convergence.
func (m *manager) SetConnectionState(
	ctx context.Context,
	id string,
	state ConnectionState,
) error {
	if id == "" {
		return errors.New(errors.NMCLIInvalidIdentifier, "connection identifier cannot be empty")
	}
	if state != StateUp && state != StateDown {
		return errors.New(errors.NMCLIInvalidState,
			fmt.Sprintf("state must be %q or %q, got %q", StateUp, StateDown, state))
	}

	command := buildStateCommand(m.binary, state, id)

	if _, err := m.execute(ctx, command); err != nil {
		return errors.Wrap(err, errors.NMCLIConnectionStateChange).
			WithMetadata("connection", id).
			WithMetadata("state", string(state))
	}
	return nil
}

func requireNameAndIfname(name, ifname string) error {
	if name == "" {
		return errors.New(errors.NMCLIInvalidIdentifier, "connection name cannot be empty")
	}
	if ifname == "" {
		return errors.New(errors.NMCLIInvalidIdentifier, "interface name cannot be empty")
	}
	return nil
}
