package chat

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/fwojciec/filechat"
)

// Renderer prints completed assistant messages with numbered citations.
type Renderer struct {
	Files  filechat.FileService
	Stdout io.Writer
	Logger *slog.Logger

	// NoColor disables ANSI styling of answers.
	NoColor bool
}

// Render consumes a run stream. Before the first answer is printed, onAnswer
// is called so a pending progress indicator can be cleared. A run that ends
// failed, cancelled, expired or incomplete is returned as an EINTERNAL error,
// as is a stream that closes before the run reports its end.
func (r *Renderer) Render(ctx context.Context, events iter.Seq2[filechat.Event, error], onAnswer func()) error {
	var finished bool
	for ev, err := range events {
		if err != nil {
			return err
		}
		switch ev.Type {
		case filechat.EventMessageCompleted, filechat.EventMessageIncomplete:
			if ev.Message == nil {
				continue
			}
			if onAnswer != nil {
				onAnswer()
			}
			r.print(ctx, ev.Message, ev.Type == filechat.EventMessageIncomplete)
		case filechat.EventRunCompleted, filechat.EventDone:
			finished = true
		case filechat.EventRunFailed, filechat.EventRunCancelled, filechat.EventRunExpired, filechat.EventRunIncomplete:
			return runError(ev.Run)
		}
	}
	if !finished {
		return filechat.Errorf(filechat.EINTERNAL, "run stream ended before the run finished")
	}
	return nil
}

func runError(run *filechat.Run) error {
	if run == nil {
		return filechat.Errorf(filechat.EINTERNAL, "run ended without completing")
	}
	if run.LastError != "" {
		return filechat.Errorf(filechat.EINTERNAL, "run %s %s: %s", run.ID, run.Status, run.LastError)
	}
	return filechat.Errorf(filechat.EINTERNAL, "run %s %s", run.ID, run.Status)
}

func (r *Renderer) print(ctx context.Context, msg *filechat.Message, partial bool) {
	text, citations := Cite(msg, func(fileID string) string {
		return r.filename(ctx, fileID)
	})

	c := color.New(color.FgBlue)
	if r.NoColor {
		c.DisableColor()
	}
	c.Fprintln(r.Stdout, text)
	if len(citations) > 0 {
		c.Fprintln(r.Stdout, FormatCitations(citations))
	}
	if partial {
		fmt.Fprintln(r.Stdout, "(answer incomplete)")
	}
	fmt.Fprint(r.Stdout, "\n\n")
}

// filename resolves a file id to its filename, falling back to the id.
func (r *Renderer) filename(ctx context.Context, fileID string) string {
	if r.Files == nil {
		return fileID
	}
	f, err := r.Files.FindFileByID(ctx, fileID)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("citation file unresolved", "file", fileID, "error", err)
		}
		return fileID
	}
	return f.Filename
}

// Cite replaces each annotation span in the message text with its zero-based
// index in brackets and returns the deduplicated names of cited files in
// order of first appearance. Only the first occurrence of a span is replaced.
func Cite(msg *filechat.Message, resolve func(fileID string) string) (string, []string) {
	text := msg.Text
	var (
		names []string
		seen  = make(map[string]bool)
	)
	for i, ann := range msg.Annotations {
		if ann.Text != "" {
			text = strings.Replace(text, ann.Text, fmt.Sprintf("[%d]", i), 1)
		}
		if ann.FileID == "" {
			continue
		}
		name := resolve(ann.FileID)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return text, names
}

// FormatCitations numbers names from 1, one per line.
func FormatCitations(names []string) string {
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%d. %s", i+1, name)
	}
	return strings.Join(lines, "\n")
}
