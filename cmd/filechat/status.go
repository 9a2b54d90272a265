package main

import (
	"fmt"

	"github.com/fwojciec/filechat"
)

var statusKeys = []struct {
	label string
	key   filechat.CacheKey
}{
	{"Index", filechat.KeyIndexID},
	{"Assistant", filechat.KeyAssistantID},
	{"Thread", filechat.KeyThreadID},
}

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	for _, k := range statusKeys {
		id, ok := deps.Cache.String(k.key)
		if !ok {
			id = "(none)"
		}
		fmt.Fprintf(deps.Stdout, "%-10s %s\n", k.label+":", id)
	}
	fmt.Fprintf(deps.Stdout, "%-10s %t\n", "Indexed:", deps.Cache.Bool(filechat.KeyFilesProcessed))
	return nil
}
