package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/filechat"
	"github.com/google/uuid"
)

// DefaultPrompt is printed before each line of input.
const DefaultPrompt = "You: "

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// Loop reads questions and commands until exit or end of input. A failed
// turn is reported and the loop continues with the next prompt.
type Loop struct {
	Sessions filechat.SessionService
	Threads  filechat.ThreadService
	Renderer *Renderer
	Progress *Progress

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Prompt string
	Logger *slog.Logger

	// NoColor disables ANSI styling of error reports.
	NoColor bool
}

// Run processes input until "exit" or EOF, both of which return nil. Only
// input read errors are returned; errors within a turn are reported.
func (l *Loop) Run(ctx context.Context) error {
	prompt := l.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	scanner := bufio.NewScanner(l.Stdin)
	for {
		fmt.Fprint(l.Stdout, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(l.Stdout)
			return scanner.Err()
		}

		line := scanner.Text()
		cmd := Classify(line)
		if cmd == CommandExit {
			return nil
		}

		turn := uuid.NewString()
		logger := l.logger().With("turn", turn, "command", cmd.String())
		if err := l.Dispatch(ctx, cmd, line); err != nil {
			l.report(logger, err)
			continue
		}
		logger.Debug("turn complete")
	}
}

// Dispatch performs one command. Exit is handled by Run.
func (l *Loop) Dispatch(ctx context.Context, cmd Command, line string) error {
	switch cmd {
	case CommandNew:
		if err := l.Sessions.DiscardThread(ctx); err != nil {
			return err
		}
		fmt.Fprint(l.Stdout, "New thread created\n\n")
		return nil
	case CommandIndex:
		return l.Sessions.Reindex(ctx)
	case CommandReset:
		return l.Sessions.Reset(ctx)
	case CommandBlank:
		fmt.Fprint(l.Stdout, clearScreen)
		fmt.Fprintln(l.Stdout)
		return nil
	case CommandQuery:
		return l.Ask(ctx, strings.TrimSpace(line))
	default:
		return nil
	}
}

// Ask sends one question on the current session and renders the answer.
func (l *Loop) Ask(ctx context.Context, question string) error {
	sess, err := l.Sessions.EnsureSession(ctx)
	if err != nil {
		return err
	}
	if err := l.Threads.CreateMessage(ctx, sess.ThreadID, question); err != nil {
		return err
	}

	stop := func() {}
	if l.Progress != nil {
		l.Progress.Start()
		stop = l.Progress.Stop
	}
	defer stop()

	return l.Renderer.Render(ctx, l.Threads.StreamRun(ctx, sess.ThreadID, sess.AssistantID), stop)
}

func (l *Loop) report(logger *slog.Logger, err error) {
	logger.Error("turn failed", "code", filechat.ErrorCode(err), "error", err)

	w := l.Stderr
	if w == nil {
		w = l.Stdout
	}
	c := color.New(color.FgRed)
	if l.NoColor {
		c.DisableColor()
	}
	c.Fprintf(w, "error: %s\n", filechat.ErrorMessage(err))
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}
