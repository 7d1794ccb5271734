// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package block

// DefaultDelimiter separates block outputs when none is configured.
const DefaultDelimiter = " | "

// Defaults is the table used when no configuration file is found.
func Defaults() Table {
	return Table{
		{Icon: "Mem: ", Command: `free -h | awk '/^Mem/ { print $3"/"$2 }' | sed s/i//g`, Interval: 30},
		{Icon: "", Command: `date '+%b %d (%a) %H:%M'`, Interval: 5},
	}
}
