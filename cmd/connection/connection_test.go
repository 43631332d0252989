package connection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ferret/pkg/nmcli"
)

// fakeManager records the last call per operation.
type fakeManager struct {
	ethernet *nmcli.EthernetConfig
	bond     *nmcli.BondConfig
	slave    *nmcli.SlaveConfig
	vlan     *nmcli.VLANConfig
	dummy    *nmcli.DummyConfig

	modifiedID    string
	modifiedProps []nmcli.Property
	stateID       string
	state         nmcli.ConnectionState
	deletedID     string
}

func (f *fakeManager) ListConnections(context.Context) ([]nmcli.ConnectionInfo, error) {
	return nil, nil
}
func (f *fakeManager) ListDevices(context.Context) ([]nmcli.DeviceInfo, error) { return nil, nil }
func (f *fakeManager) ShowConnection(context.Context, string) (string, error) { return "", nil }

func (f *fakeManager) AddEthernetConnection(_ context.Context, cfg nmcli.EthernetConfig) error {
	f.ethernet = &cfg
	return nil
}

func (f *fakeManager) AddBond(_ context.Context, cfg nmcli.BondConfig) error {
	f.bond = &cfg
	return nil
}

func (f *fakeManager) AddSlave(_ context.Context, cfg nmcli.SlaveConfig) error {
	f.slave = &cfg
	return nil
}

func (f *fakeManager) AddVLAN(_ context.Context, cfg nmcli.VLANConfig) error {
	f.vlan = &cfg
	return nil
}

func (f *fakeManager) AddDummy(_ context.Context, cfg nmcli.DummyConfig) error {
	f.dummy = &cfg
	return nil
}

func (f *fakeManager) ModifyConnection(_ context.Context, id string, properties []nmcli.Property) error {
	f.modifiedID = id
	f.modifiedProps = properties
	return nil
}

func (f *fakeManager) ModifyDevice(context.Context, string, []nmcli.Property) error { return nil }

func (f *fakeManager) DeleteConnection(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

func (f *fakeManager) DeleteDevice(context.Context, string) error { return nil }

func (f *fakeManager) SetConnectionState(_ context.Context, id string, state nmcli.ConnectionState) error {
	f.stateID = id
	f.state = state
	return nil
}

func withFakeManager(t *testing.T) *fakeManager {
	t.Helper()
	fake := &fakeManager{}
	orig := newManager
	newManager = func() (nmcli.Manager, error) { return fake, nil }
	t.Cleanup(func() { newManager = orig })
	return fake
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewConnectionCmd()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func TestAddEthernetCommand(t *testing.T) {
	t.Run("FlagsMapToConfig", func(t *testing.T) {
		fake := withFakeManager(t)

		err := runCommand(t, "add", "ethernet", "eth-test",
			"--ifname", "eth0",
			"--mac", "aa:bb:cc:dd:ee:ff",
			"--mtu", "9000",
			"--autoconnect",
			"--ipv4-method", "manual",
			"--ipv4-address", "192.168.1.10/24")
		require.NoError(t, err)

		require.NotNil(t, fake.ethernet)
		assert.Equal(t, "eth-test", fake.ethernet.Name)
		assert.Equal(t, "eth0", fake.ethernet.IfName)
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", fake.ethernet.MAC)
		require.NotNil(t, fake.ethernet.MTU)
		assert.Equal(t, 9000, *fake.ethernet.MTU)
		require.NotNil(t, fake.ethernet.AutoConnect)
		assert.True(t, *fake.ethernet.AutoConnect)
		assert.Equal(t, "manual", fake.ethernet.IP.IPv4Method)
		assert.Equal(t, "192.168.1.10/24", fake.ethernet.IP.IPv4Address)
	})

	t.Run("UntouchedFlagsStayUnset", func(t *testing.T) {
		fake := withFakeManager(t)

		err := runCommand(t, "add", "ethernet", "eth-plain", "--ifname", "eth1")
		require.NoError(t, err)

		require.NotNil(t, fake.ethernet)
		assert.Nil(t, fake.ethernet.MTU)
		assert.Nil(t, fake.ethernet.AutoConnect)
		assert.Nil(t, fake.ethernet.Save)
	})

	t.Run("ExplicitFalseIsCarried", func(t *testing.T) {
		fake := withFakeManager(t)

		err := runCommand(t, "add", "ethernet", "eth-noauto",
			"--ifname", "eth2", "--autoconnect=false")
		require.NoError(t, err)

		require.NotNil(t, fake.ethernet.AutoConnect)
		assert.False(t, *fake.ethernet.AutoConnect)
	})

	t.Run("MissingIfnameRejected", func(t *testing.T) {
		withFakeManager(t)

		err := runCommand(t, "add", "ethernet", "eth-test")
		require.Error(t, err)
	})
}

func TestAddBondCommand(t *testing.T) {
	fake := withFakeManager(t)

	err := runCommand(t, "add", "bond", "bond0",
		"--ifname", "bond0", "--mode", "active-backup", "--miimon", "0")
	require.NoError(t, err)

	require.NotNil(t, fake.bond)
	assert.Equal(t, "active-backup", fake.bond.Mode)
	// miimon 0 was set explicitly and must survive.
	require.NotNil(t, fake.bond.MIIMon)
	assert.Equal(t, 0, *fake.bond.MIIMon)
}

func TestAddSlaveCommand(t *testing.T) {
	fake := withFakeManager(t)

	err := runCommand(t, "add", "slave", "bond0-port1",
		"--ifname", "eth1", "--master", "bond0")
	require.NoError(t, err)

	require.NotNil(t, fake.slave)
	assert.Equal(t, nmcli.TypeEthernet, fake.slave.SlaveType)
	assert.Equal(t, "bond0", fake.slave.Master)
}

func TestAddVLANCommand(t *testing.T) {
	fake := withFakeManager(t)

	err := runCommand(t, "add", "vlan", "vlan-prio", "--dev", "eth0", "--id", "0")
	require.NoError(t, err)

	require.NotNil(t, fake.vlan)
	assert.Equal(t, "eth0", fake.vlan.Device)
	assert.Equal(t, 0, fake.vlan.ID)
}

func TestAddDummyCommand(t *testing.T) {
	fake := withFakeManager(t)

	err := runCommand(t, "add", "dummy", "dummy0", "--ifname", "dummy0", "--save=false")
	require.NoError(t, err)

	require.NotNil(t, fake.dummy)
	require.NotNil(t, fake.dummy.Save)
	assert.False(t, *fake.dummy.Save)
}

func TestModifyCommand(t *testing.T) {
	t.Run("PairsPreserveOrder", func(t *testing.T) {
		fake := withFakeManager(t)

		err := runCommand(t, "modify", "lan",
			"+ipv4.addresses", "192.168.23.2/24", "ipv4.gateway", "192.168.23.1")
		require.NoError(t, err)

		assert.Equal(t, "lan", fake.modifiedID)
		assert.Equal(t, []nmcli.Property{
			{Name: "+ipv4.addresses", Value: "192.168.23.2/24"},
			{Name: "ipv4.gateway", Value: "192.168.23.1"},
		}, fake.modifiedProps)
	})

	t.Run("DanglingPropertyRejected", func(t *testing.T) {
		fake := withFakeManager(t)

		err := runCommand(t, "modify", "lan", "ipv4.gateway", "192.168.23.1", "ipv4.dns")
		require.Error(t, err)
		assert.Empty(t, fake.modifiedID)
	})
}

func TestStateCommands(t *testing.T) {
	fake := withFakeManager(t)

	require.NoError(t, runCommand(t, "up", "lan"))
	assert.Equal(t, "lan", fake.stateID)
	assert.Equal(t, nmcli.StateUp, fake.state)

	require.NoError(t, runCommand(t, "down", "lan"))
	assert.Equal(t, nmcli.StateDown, fake.state)
}

func TestDeleteCommand(t *testing.T) {
	fake := withFakeManager(t)

	require.NoError(t, runCommand(t, "delete", "eth-test"))
	assert.Equal(t, "eth-test", fake.deletedID)
}
