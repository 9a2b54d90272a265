package main

import (
	"fmt"

	"github.com/fwojciec/filechat"
)

// Run executes the reset command.
func (c *ResetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion of every assistant, file and index on the account\n")
		return filechat.Errorf(filechat.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Sessions.Reset(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filechat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Reset complete")
	return nil
}
