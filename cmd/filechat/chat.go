package main

import (
	"fmt"

	"github.com/fwojciec/filechat"
)

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	if err := deps.Loop.Run(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filechat.ErrorMessage(err))
		return err
	}
	return nil
}
