// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package nmcli

import "context"

// Object selects which nmcli object a command operates on.
type Object string

const (
	ObjectConnection Object = "connection"
	ObjectDevice     Object = "device"
)

// Operation is an nmcli verb.
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationModify Operation = "modify"
	OperationDelete Operation = "delete"
	OperationShow   Operation = "show"
)

// ConnectionType is the nmcli connection type passed to `connection add`.
type ConnectionType string

const (
	TypeEthernet ConnectionType = "ethernet"
	TypeBond     ConnectionType = "bond"
	TypeVLAN     ConnectionType = "vlan"
	TypeDummy    ConnectionType = "dummy"
)

// ConnectionState is a target state for `nmcli connection up|down`.
type ConnectionState string

const (
	StateUp   ConnectionState = "up"
	StateDown ConnectionState = "down"
)

// GENERAL.* setting names used with -g field projections.
const (
	SettingDevice = "GENERAL.DEVICE"
	SettingType   = "GENERAL.TYPE"
	SettingMAC    = "GENERAL.HWADDR"
	SettingMTU    = "GENERAL.MTU"
)

// ConnectionInfo is one record of a terse connection listing.
type ConnectionInfo struct {
	Name   string `json:"name"`
	UUID   string `json:"uuid"`
	Type   string `json:"type"`
	Device string `json:"device"`
}

// DeviceInfo is one record of a device listing. All fields are reported
// verbatim as nmcli prints them; MTU stays a string on purpose.
type DeviceInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
	MAC  string `json:"mac"`
	MTU  string `json:"mtu"`
}

// Property is a single nmcli property token pair. Names may carry a '+' or
// '-' prefix for nmcli's append/remove semantics on multi-value properties;
// they are passed through untouched. Order is preserved on the command line.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// IPConfig groups the IPv4/IPv6 addressing options shared by the typed add
// operations. Empty fields are omitted from the built command.
type IPConfig struct {
	IPv4Method  string `json:"ipv4_method,omitempty"`
	IPv4Address string `json:"ipv4_address,omitempty"`
	IPv4Gateway string `json:"ipv4_gateway,omitempty"`
	IPv6Method  string `json:"ipv6_method,omitempty"`
	IPv6Address string `json:"ipv6_address,omitempty"`
	IPv6Gateway string `json:"ipv6_gateway,omitempty"`
}

// EthernetConfig configures an ethernet connection add.
//
// AutoConnect and Save are three-state: nil omits the option, an explicit
// false renders the literal "no". Same for every optional pointer below —
// this is what keeps a zero MTU distinct from an unset one.
type EthernetConfig struct {
	Name        string   `json:"name"`
	IfName      string   `json:"ifname"`
	AutoConnect *bool    `json:"autoconnect,omitempty"`
	Save        *bool    `json:"save,omitempty"`
	MAC         string   `json:"mac,omitempty"`
	MTU         *int     `json:"mtu,omitempty"`
	IP          IPConfig `json:"ip,omitempty"`
}

// BondConfig configures a bond connection add.
type BondConfig struct {
	Name        string   `json:"name"`
	IfName      string   `json:"ifname"`
	Mode        string   `json:"mode,omitempty"`
	MIIMon      *int     `json:"miimon,omitempty"`
	AutoConnect *bool    `json:"autoconnect,omitempty"`
	Save        *bool    `json:"save,omitempty"`
	IP          IPConfig `json:"ip,omitempty"`
}

// SlaveConfig configures a bond slave connection add.
type SlaveConfig struct {
	Name        string         `json:"name"`
	SlaveType   ConnectionType `json:"slave_type"`
	IfName      string         `json:"ifname"`
	Master      string         `json:"master"`
	AutoConnect *bool          `json:"autoconnect,omitempty"`
	Save        *bool          `json:"save,omitempty"`
}

// VLANConfig configures a VLAN connection add. ID is required and 0 is a
// valid VLAN ID.
type VLANConfig struct {
	Name        string   `json:"name"`
	Device      string   `json:"device"`
	ID          int      `json:"id"`
	MTU         *int     `json:"mtu,omitempty"`
	AutoConnect *bool    `json:"autoconnect,omitempty"`
	Save        *bool    `json:"save,omitempty"`
	IP          IPConfig `json:"ip,omitempty"`
}

// DummyConfig configures a dummy connection add.
type DummyConfig struct {
	Name        string   `json:"name"`
	IfName      string   `json:"ifname"`
	AutoConnect *bool    `json:"autoconnect,omitempty"`
	Save        *bool    `json:"save,omitempty"`
	IP          IPConfig `json:"ip,omitempty"`
}

// Manager is the nmcli management surface consumed by the API and CLI.
type Manager interface {
	ListConnections(ctx context.Context) ([]ConnectionInfo, error)
	ListDevices(ctx context.Context) ([]DeviceInfo, error)
	ShowConnection(ctx context.Context, id string) (string, error)

	AddEthernetConnection(ctx context.Context, cfg EthernetConfig) error
	AddBond(ctx context.Context, cfg BondConfig) error
	AddSlave(ctx context.Context, cfg SlaveConfig) error
	AddVLAN(ctx context.Context, cfg VLANConfig) error
	AddDummy(ctx context.Context, cfg DummyConfig) error

	ModifyConnection(ctx context.Context, id string, properties []Property) error
	ModifyDevice(ctx context.Context, name string, properties []Property) error
	DeleteConnection(ctx context.Context, id string) error
	DeleteDevice(ctx context.Context, name string) error
	SetConnectionState(ctx context.Context, id string, state ConnectionState) error
}

// Bool returns a pointer to v, for the three-state option fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for optional numeric option fields.
func Int(v int) *int { return &v }
