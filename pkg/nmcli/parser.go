// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package nmcli

import (
	"fmt"
	"strings"

	"github.com/stratastor/ferret/pkg/errors"
)

// connectionListFields is the number of columns projected by ListConnections.
const connectionListFields = 4

// parseConnectionList parses terse `-t -f NAME,UUID,TYPE,DEVICE` output, one
// colon-delimited record per line. Blank lines are skipped; a line with fewer
// than four fields is a parse error, not a silent drop. Only the first three
// colons split so a DEVICE value containing a colon stays intact.
func parseConnectionList(out string) ([]ConnectionInfo, error) {
	var connections []ConnectionInfo

	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, ":", connectionListFields)
		if len(fields) < connectionListFields {
			return nil, errors.New(errors.NMCLIOutputParse,
				fmt.Sprintf("expected %d colon-separated fields", connectionListFields)).
				WithMetadata("line", line)
		}

		connections = append(connections, ConnectionInfo{
			Name:   fields[0],
			UUID:   fields[1],
			Type:   fields[2],
			Device: fields[3],
		})
	}

	return connections, nil
}

// parseDeviceNames parses `-g GENERAL.DEVICE device show` output, one device
// name per line.
func parseDeviceNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// parseDeviceDetails parses the `-e no -g GENERAL.TYPE,GENERAL.HWADDR,
// GENERAL.MTU device show <name>` output: three newline-delimited values in
// projection order. Fewer values means the device disappeared or nmcli changed
// shape, either way a parse error.
func parseDeviceDetails(name, out string) (DeviceInfo, error) {
	values := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(values) < 3 {
		return DeviceInfo{}, errors.New(errors.NMCLIOutputParse,
			"expected type, MAC and MTU values in device detail output").
			WithMetadata("device", name).
			WithMetadata("output", out)
	}

	return DeviceInfo{
		Name: name,
		Type: values[0],
		MAC:  values[1],
		MTU:  values[2],
	}, nil
}
