package connection

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stratastor/logger"

	"github.com/stratastor/ferret/config"
	"github.com/stratastor/ferret/pkg/nmcli"
)

// newManager builds the nmcli manager from config; variable so tests can
// substitute a fake.
var newManager = defaultManager

func defaultManager() (nmcli.Manager, error) {
	cfg := config.GetConfig()

	l, err := logger.NewTag(config.NewLoggerConfig(cfg), "nmcli")
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.NMCLI.Timeout)
	if err != nil {
		timeout = 0
	}

	executor := nmcli.NewLocalExecutor(l, cfg.NMCLI.UseSudo, timeout)
	return nmcli.NewManager(l, executor, cfg.NMCLI.Binary)
}

func NewConnectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connection",
		Short: "Manage NetworkManager connections",
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newModifyCmd())
	cmd.AddCommand(newUpCmd())
	cmd.AddCommand(newDownCmd())
	cmd.AddCommand(newDeleteCmd())

	return cmd
}

// ipFlags groups the addressing flags shared by the add subcommands.
type ipFlags struct {
	ipv4Method  string
	ipv4Address string
	ipv4Gateway string
	ipv6Method  string
	ipv6Address string
	ipv6Gateway string
}

func (f *ipFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ipv4Method, "ipv4-method", "", "IPv4 method (auto, manual, disabled)")
	cmd.Flags().StringVar(&f.ipv4Address, "ipv4-address", "", "IPv4 address in CIDR notation")
	cmd.Flags().StringVar(&f.ipv4Gateway, "ipv4-gateway", "", "IPv4 gateway")
	cmd.Flags().StringVar(&f.ipv6Method, "ipv6-method", "", "IPv6 method (auto, manual, disabled)")
	cmd.Flags().StringVar(&f.ipv6Address, "ipv6-address", "", "IPv6 address in CIDR notation")
	cmd.Flags().StringVar(&f.ipv6Gateway, "ipv6-gateway", "", "IPv6 gateway")
}

func (f *ipFlags) config() nmcli.IPConfig {
	return nmcli.IPConfig{
		IPv4Method:  f.ipv4Method,
		IPv4Address: f.ipv4Address,
		IPv4Gateway: f.ipv4Gateway,
		IPv6Method:  f.ipv6Method,
		IPv6Address: f.ipv6Address,
		IPv6Gateway: f.ipv6Gateway,
	}
}

func registerCommonFlags(cmd *cobra.Command, autoConnect, save *bool) {
	cmd.Flags().BoolVar(autoConnect, "autoconnect", false, "Activate the connection automatically")
	cmd.Flags().BoolVar(save, "save", false, "Persist the connection to disk")
}

// optionalBool returns a pointer only when the flag was set on the command
// line, so an untouched flag is omitted from the nmcli command while an
// explicit --flag=false renders "no".
func optionalBool(cmd *cobra.Command, name string, v bool) *bool {
	if cmd.Flags().Changed(name) {
		return nmcli.Bool(v)
	}
	return nil
}

func optionalInt(cmd *cobra.Command, name string, v int) *int {
	if cmd.Flags().Changed(name) {
		return nmcli.Int(v)
	}
	return nil
}

// parseProperties converts trailing name/value arguments into ordered
// property pairs. Names may carry nmcli's +/- prefixes.
func parseProperties(args []string) ([]nmcli.Property, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("properties must come in name value pairs")
	}

	properties := make([]nmcli.Property, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		properties = append(properties, nmcli.Property{Name: args[i], Value: args[i+1]})
	}
	return properties, nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List NetworkManager connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			connections, err := manager.ListConnections(context.Background())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUUID\tTYPE\tDEVICE")
			for _, conn := range connections {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", conn.Name, conn.UUID, conn.Type, conn.Device)
			}
			return w.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <connection>",
		Short: "Show connection details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			details, err := manager.ShowConnection(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(details)
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a NetworkManager connection",
	}

	cmd.AddCommand(newAddEthernetCmd())
	cmd.AddCommand(newAddBondCmd())
	cmd.AddCommand(newAddSlaveCmd())
	cmd.AddCommand(newAddVLANCmd())
	cmd.AddCommand(newAddDummyCmd())

	return cmd
}

func newAddEthernetCmd() *cobra.Command {
	var (
		ifname      string
		mac         string
		mtu         int
		autoConnect bool
		save        bool
		ip          ipFlags
	)

	cmd := &cobra.Command{
		Use:   "ethernet <name>",
		Short: "Add an ethernet connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			cfg := nmcli.EthernetConfig{
				Name:        args[0],
				IfName:      ifname,
				MAC:         mac,
				MTU:         optionalInt(cmd, "mtu", mtu),
				AutoConnect: optionalBool(cmd, "autoconnect", autoConnect),
				Save:        optionalBool(cmd, "save", save),
				IP:          ip.config(),
			}

			if err := manager.AddEthernetConnection(context.Background(), cfg); err != nil {
				return err
			}

			fmt.Printf("Connection %q created\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ifname, "ifname", "", "Interface name")
	cmd.Flags().StringVar(&mac, "mac", "", "MAC address to bind")
	cmd.Flags().IntVar(&mtu, "mtu", 0, "MTU in bytes")
	registerCommonFlags(cmd, &autoConnect, &save)
	ip.register(cmd)
	_ = cmd.MarkFlagRequired("ifname")

	return cmd
}

func newAddBondCmd() *cobra.Command {
	var (
		ifname      string
		mode        string
		miimon      int
		autoConnect bool
		save        bool
		ip          ipFlags
	)

	cmd := &cobra.Command{
		Use:   "bond <name>",
		Short: "Add a bond connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			cfg := nmcli.BondConfig{
				Name:        args[0],
				IfName:      ifname,
				Mode:        mode,
				MIIMon:      optionalInt(cmd, "miimon", miimon),
				AutoConnect: optionalBool(cmd, "autoconnect", autoConnect),
				Save:        optionalBool(cmd, "save", save),
				IP:          ip.config(),
			}

			if err := manager.AddBond(context.Background(), cfg); err != nil {
				return err
			}

			fmt.Printf("Bond %q created\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ifname, "ifname", "", "Interface name")
	cmd.Flags().StringVar(&mode, "mode", "", "Bond mode (active-backup, balance-rr, 802.3ad, ...)")
	cmd.Flags().IntVar(&miimon, "miimon", 0, "MII link monitoring interval in ms")
	registerCommonFlags(cmd, &autoConnect, &save)
	ip.register(cmd)
	_ = cmd.MarkFlagRequired("ifname")

	return cmd
}

func newAddSlaveCmd() *cobra.Command {
	var (
		ifname      string
		slaveType   string
		master      string
		autoConnect bool
		save        bool
	)

	cmd := &cobra.Command{
		Use:   "slave <name>",
		Short: "Enslave an interface to a master connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			cfg := nmcli.SlaveConfig{
				Name:        args[0],
				SlaveType:   nmcli.ConnectionType(slaveType),
				IfName:      ifname,
				Master:      master,
				AutoConnect: optionalBool(cmd, "autoconnect", autoConnect),
				Save:        optionalBool(cmd, "save", save),
			}

			if err := manager.AddSlave(context.Background(), cfg); err != nil {
				return err
			}

			fmt.Printf("Slave %q created\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ifname, "ifname", "", "Interface name")
	cmd.Flags().StringVar(&slaveType, "slave-type", "ethernet", "Slave connection type")
	cmd.Flags().StringVar(&master, "master", "", "Master connection or interface")
	registerCommonFlags(cmd, &autoConnect, &save)
	_ = cmd.MarkFlagRequired("ifname")
	_ = cmd.MarkFlagRequired("master")

	return cmd
}

func newAddVLANCmd() *cobra.Command {
	var (
		dev         string
		id          int
		mtu         int
		autoConnect bool
		save        bool
		ip          ipFlags
	)

	cmd := &cobra.Command{
		Use:   "vlan <name>",
		Short: "Add a VLAN connection on a parent device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			cfg := nmcli.VLANConfig{
				Name:        args[0],
				Device:      dev,
				ID:          id,
				MTU:         optionalInt(cmd, "mtu", mtu),
				AutoConnect: optionalBool(cmd, "autoconnect", autoConnect),
				Save:        optionalBool(cmd, "save", save),
				IP:          ip.config(),
			}

			if err := manager.AddVLAN(context.Background(), cfg); err != nil {
				return err
			}

			fmt.Printf("VLAN %q created\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dev, "dev", "", "Parent device")
	cmd.Flags().IntVar(&id, "id", 0, "VLAN ID (0 is valid)")
	cmd.Flags().IntVar(&mtu, "mtu", 0, "MTU in bytes")
	registerCommonFlags(cmd, &autoConnect, &save)
	ip.register(cmd)
	_ = cmd.MarkFlagRequired("dev")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newAddDummyCmd() *cobra.Command {
	var (
		ifname      string
		autoConnect bool
		save        bool
		ip          ipFlags
	)

	cmd := &cobra.Command{
		Use:   "dummy <name>",
		Short: "Add a dummy connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			cfg := nmcli.DummyConfig{
				Name:        args[0],
				IfName:      ifname,
				AutoConnect: optionalBool(cmd, "autoconnect", autoConnect),
				Save:        optionalBool(cmd, "save", save),
				IP:          ip.config(),
			}

			if err := manager.AddDummy(context.Background(), cfg); err != nil {
				return err
			}

			fmt.Printf("Connection %q created\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ifname, "ifname", "", "Interface name")
	registerCommonFlags(cmd, &autoConnect, &save)
	ip.register(cmd)
	_ = cmd.MarkFlagRequired("ifname")

	return cmd
}

func newModifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modify <connection> <property> <value> ...",
		Short: "Modify connection properties",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			properties, err := parseProperties(args[1:])
			if err != nil {
				return err
			}

			manager, err := newManager()
			if err != nil {
				return err
			}

			if err := manager.ModifyConnection(context.Background(), args[0], properties); err != nil {
				return err
			}

			fmt.Printf("Connection %q modified\n", args[0])
			return nil
		},
	}
}

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up <connection>",
		Short: "Activate a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			if err := manager.SetConnectionState(context.Background(), args[0], nmcli.StateUp); err != nil {
				return err
			}

			fmt.Printf("Connection %q activated\n", args[0])
			return nil
		},
	}
}

func newDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down <connection>",
		Short: "Deactivate a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			if err := manager.SetConnectionState(context.Background(), args[0], nmcli.StateDown); err != nil {
				return err
			}

			fmt.Printf("Connection %q deactivated\n", args[0])
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <connection>",
		Short: "Delete a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			if err := manager.DeleteConnection(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Connection %q deleted\n", args[0])
			return nil
		},
	}
}
