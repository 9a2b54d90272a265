package main

import (
	"fmt"

	"github.com/fwojciec/filechat"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	if err := deps.Sessions.Reindex(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filechat.ErrorMessage(err))
		return err
	}
	return nil
}
