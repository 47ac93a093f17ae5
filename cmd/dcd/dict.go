package main

import (
	"fmt"
	"sort"
)

// Run executes the dict command.
func (c *DictCmd) Run(deps *Dependencies) error {
	labels := deps.Dict.Labels()

	if c.Keys {
		seen := make(map[string]bool, len(labels))
		keys := make([]string, 0, len(labels))
		for _, l := range labels {
			entry, _ := deps.Dict.LookupLabel(l)
			k := string(entry.Key)
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintln(deps.Stdout, k)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Label dictionary version %d, %d labels\n\n", deps.Dict.Version(), len(labels))
	for _, l := range labels {
		entry, _ := deps.Dict.LookupLabel(l)
		line := fmt.Sprintf("%s  %s", l, entry.Key)
		if entry.Unit != "" {
			line += fmt.Sprintf(" (%s)", entry.Unit)
		}
		if !deps.Dict.Enabled(l) {
			line += "  [disabled]"
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
