package action

import (
	"bufio"
	"bytes"
	"context"
	"io"

	"github.com/NielsdaWheelz/ytgit/internal/errors"
)

// maxMessageSize bounds a single wire message. Tickets with long comment
// threads are the largest payloads.
const maxMessageSize = 8 * 1024 * 1024

// Serve reads newline-delimited messages from r and dispatches them in order
// until EOF. Cancellation is checked between messages. A message that fails
// to decode is reported and skipped; handler failures do not stop the loop.
// Returns the number of messages handled successfully.
func Serve(ctx context.Context, r io.Reader, d *Dispatcher) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	handled := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return handled, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		req, err := DecodeMessage(line)
		if err != nil {
			d.Reject(req, err)
			continue
		}
		if _, err := d.Dispatch(ctx, req); err == nil {
			handled++
		}
	}
	if err := scanner.Err(); err != nil {
		return handled, errors.Wrap(errors.EInvalidMessage, "failed to read messages", err)
	}
	return handled, ctx.Err()
}
