// Command redact-logs copies log lines from stdin to stdout with credentials,
// password hashes, tokens, emails and SQL removed, using the same rules the
// server applies to logged errors. Use it before sharing logs captured from
// an older build or from a database proxy.
//
//	kubectl logs deploy/userbase-api | redact-logs > shareable.log
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/userbase-api/internal/redact"
)

// maxLineBytes bounds a single log line. A longer line stops the run after
// every earlier line has been written.
const maxLineBytes = 1 << 20

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "redact-logs: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	w := bufio.NewWriter(out)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, redact.String(scanner.Text())); err != nil {
			return err
		}
	}
	flushErr := w.Flush()
	if err := scanner.Err(); err != nil {
		return errors.Join(fmt.Errorf("read input: %w", err), flushErr)
	}
	return flushErr
}
