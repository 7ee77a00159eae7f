// Package notify delivers a finished report to where people will read it.
package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Result describes a delivered message.
type Result struct {
	// Destination names the kind of delivery, e.g. "slack-webhook".
	Destination string
	// Channel and Timestamp identify the Slack message when the API
	// reports them.
	Channel   string
	Timestamp string
	// Skipped is set when nothing was sent.
	Skipped bool
}

// Poster sends text somewhere.
type Poster interface {
	Post(ctx context.Context, text string) (Result, error)
}

// Writer is a Poster that prints to an io.Writer, for dry runs.
type Writer struct {
	W io.Writer
}

func (w Writer) Post(_ context.Context, text string) (Result, error) {
	if _, err := fmt.Fprint(w.W, text); err != nil {
		return Result{}, errors.Wrap(err, "write message")
	}
	return Result{Destination: "writer"}, nil
}
