package main

import (
	"fmt"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return dongchedi.Errorf(dongchedi.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, c.ID); err != nil {
		if dongchedi.ErrorCode(err) == dongchedi.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'dcd history' to see stored records.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dongchedi.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted record %q\n", c.ID)
	return nil
}
