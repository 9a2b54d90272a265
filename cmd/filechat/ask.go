package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/filechat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	question := strings.TrimSpace(strings.Join(c.Question, " "))
	if question == "" {
		fmt.Fprintf(deps.Stderr, "error: question required\n")
		return filechat.Errorf(filechat.EINVALID, "question required")
	}

	if err := deps.Loop.Ask(deps.Ctx, question); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filechat.ErrorMessage(err))
		return err
	}
	return nil
}
