package main

import (
	"fmt"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := dongchedi.RecordFilter{Limit: c.Limit}
	if c.Kind != "" {
		kind := dongchedi.RecordKind(c.Kind)
		filter.Kind = &kind
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dongchedi.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'dcd parse' to create one.")
		return nil
	}

	for _, r := range records {
		title := r.Title
		if title == "" {
			title = r.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-13s  %s\n",
			r.ID, r.ParsedAt.Format("2006-01-02 15:04"), r.Kind, title)
	}

	return nil
}
