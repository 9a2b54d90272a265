// Package chat implements the interactive question loop: reading input,
// dispatching control commands, streaming answers and rendering citations.
package chat

import "strings"

// Command is the classification of one line of user input.
type Command int

const (
	CommandQuery Command = iota
	CommandExit
	CommandNew
	CommandIndex
	CommandReset
	CommandBlank
)

// String returns the command keyword, or "query" for free text.
func (c Command) String() string {
	switch c {
	case CommandExit:
		return "exit"
	case CommandNew:
		return "new"
	case CommandIndex:
		return "index"
	case CommandReset:
		return "reset"
	case CommandBlank:
		return "blank"
	default:
		return "query"
	}
}

// Classify maps an input line to a command. Keywords match the trimmed line
// exactly; anything else non-blank is a query.
func Classify(line string) Command {
	switch strings.TrimSpace(line) {
	case "exit":
		return CommandExit
	case "new":
		return CommandNew
	case "index":
		return CommandIndex
	case "reset":
		return CommandReset
	case "":
		return CommandBlank
	default:
		return CommandQuery
	}
}
