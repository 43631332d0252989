package device

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

func NewDeviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Manage NetworkManager devices",
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newModifyCmd())
	cmd.AddCommand(newDeleteCmd())

	return cmd
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
		Short: "List NetworkManager devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			devices, err := manager.ListDevices(context.Background())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tMAC\tMTU")
			for _, dev := range devices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dev.Name, dev.Type, dev.MAC, dev.MTU)
			}
			return w.Flush()
		},
	}
}

func newModifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modify <device> <property> <value> ...",
		Short: "Modify device properties",
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

			if err := manager.ModifyDevice(context.Background(), args[0], properties); err != nil {
				return err
			}

			fmt.Printf("Device %q modified\n", args[0])
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <device>",
		Short: "Delete a software device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			if err := manager.DeleteDevice(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Device %q deleted\n", args[0])
			return nil
		},
	}
}
