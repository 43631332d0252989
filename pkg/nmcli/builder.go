// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package nmcli

import (
	"fmt"
	"strings"
)

// IP option property names, in the order nmcli expects them.
const (
	optIPv4Method    = "ipv4.method"
	optIPv4Addresses = "ipv4.addresses"
	optIPv4Gateway   = "ipv4.gateway"
	optIPv6Method    = "ipv6.method"
	optIPv6Addresses = "ipv6.addresses"
	optIPv6Gateway   = "ipv6.gateway"
)

// Type-specific option property names.
const (
	optMAC    = "mac"
	optMTU    = "mtu"
	optMode   = "mode"
	optMIIMon = "miimon"
	optMaster = "master"
	optDev    = "dev"
	optID     = "id"
)

// commandParams is the full parameter bag for buildCommand. Only the fields
// meaningful for the requested operation are consulted: name for
// delete/modify, the common options for add, properties and ip for both add
// and modify.
type commandParams struct {
	object      Object
	operation   Operation
	name        string
	conType     ConnectionType
	ifname      string
	autoConnect *bool
	save        *bool
	properties  []Property
	ip          IPConfig
}

// buildCommand composes a complete nmcli command line. Token order is load
// bearing: base, identifier/common options, type-specific properties, IP
// options. nmcli parses positionally in places, so the order must not change.
func buildCommand(binary string, p commandParams) string {
	command := fmt.Sprintf("%s %s %s", binary, p.object, p.operation)

	switch p.operation {
	case OperationDelete, OperationModify:
		command += " " + p.name
	case OperationAdd:
		command += " " + buildCommonOptions(p.conType, p.name, p.ifname, p.autoConnect, p.save)
	}

	for _, prop := range p.properties {
		command += fmt.Sprintf(" %s %s", prop.Name, prop.Value)
	}

	command += buildIPOptions(p.ip)

	return command
}

// buildCommonOptions renders the `connection add` common option block.
// AutoConnect and Save are omitted when nil; an explicit false renders "no".
func buildCommonOptions(
	conType ConnectionType,
	name, ifname string,
	autoConnect, save *bool,
) string {
	common := fmt.Sprintf("type %s con-name %s ifname %s", conType, name, ifname)

	if autoConnect != nil {
		common += " autoconnect " + yesNo(*autoConnect)
	}
	if save != nil {
		common += " save " + yesNo(*save)
	}

	return common
}

// buildIPOptions appends the addressing options in fixed order, each only
// when set. The returned string is empty or starts with a space.
func buildIPOptions(ip IPConfig) string {
	command := ""

	if ip.IPv4Method != "" {
		command += " " + optIPv4Method + " " + ip.IPv4Method
	}
	if ip.IPv6Method != "" {
		command += " " + optIPv6Method + " " + ip.IPv6Method
	}
	if ip.IPv4Address != "" {
		command += " " + optIPv4Addresses + " " + ip.IPv4Address
	}
	if ip.IPv4Gateway != "" {
		command += " " + optIPv4Gateway + " " + ip.IPv4Gateway
	}
	if ip.IPv6Address != "" {
		command += " " + optIPv6Addresses + " " + ip.IPv6Address
	}
	if ip.IPv6Gateway != "" {
		command += " " + optIPv6Gateway + " " + ip.IPv6Gateway
	}

	return command
}

// buildShowCommand renders a listing/show command with optional terse flags
// and a -g/-f field projection.
func buildShowCommand(binary string, object Object, flags []string, identifier string) string {
	parts := []string{binary}
	parts = append(parts, flags...)
	parts = append(parts, string(object), string(OperationShow))
	if identifier != "" {
		parts = append(parts, identifier)
	}
	return strings.Join(parts, " ")
}

// buildStateCommand renders `nmcli connection up|down <id>`.
func buildStateCommand(binary string, state ConnectionState, id string) string {
	return fmt.Sprintf("%s %s %s %s", binary, ObjectConnection, state, id)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
