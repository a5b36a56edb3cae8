package util

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// ReadLines reads r in a background goroutine and delivers each line,
// without its trailing newline (or "\r\n"), on the returned channel.
// Lines have no length limit.  The line channel is closed on EOF, read
// error, or context cancellation; the error channel then receives
// exactly one value (nil on clean EOF).
//
// A goroutine blocked on a read from os.Stdin cannot be interrupted, so
// after cancellation it lingers until the next line or process exit.
func ReadLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if err != nil && (!errors.Is(err, io.EOF) || line == "") {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				errc <- err
				return
			}
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

			select {
			case lines <- line:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
			if err != nil {
				errc <- nil
				return
			}
		}
	}()

	return lines, errc
}
