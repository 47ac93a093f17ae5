package main

import (
	"fmt"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		if dongchedi.ErrorCode(err) == dongchedi.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'dcd history' to see stored records.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", dongchedi.ErrorMessage(err))
		}
		return err
	}

	return deps.Renderer.Render(deps.Stdout, rec)
}
