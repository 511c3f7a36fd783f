package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned when the operator's input ends before the
// session does.
var ErrInputClosed = errors.New("input closed")

// Prompter asks the operator one question and returns the raw answer
// without its line terminator.
type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

var _ Prompter = (*Terminal)(nil)

// Terminal prompts on out and reads answers line by line from in. It is not
// safe for concurrent use.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// pending carries the result of the read in flight. A prompt abandoned by
	// its context leaves it set so the next prompt gets that line.
	pending chan line
}

type line struct {
	text string
	err  error
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Prompt writes question and waits for the next line or for ctx to be done.
func (t *Terminal) Prompt(ctx context.Context, question string) (string, error) {
	if _, err := io.WriteString(t.out, question); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	if t.pending == nil {
		t.pending = t.readLine()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-t.pending:
		t.pending = nil
		switch {
		case errors.Is(l.err, io.EOF):
			return "", ErrInputClosed
		case l.err != nil:
			return "", fmt.Errorf("read answer: %w", l.err)
		}
		return l.text, nil
	}
}

// readLine reads one line off the caller's goroutine so a cancelled context
// can abandon a pending prompt. The goroutine exits as soon as the read
// returns; the buffered channel holds its result until it is claimed.
func (t *Terminal) readLine() chan line {
	ch := make(chan line, 1)

	go func() {
		text, err := t.in.ReadString('\n')
		if err != nil && text != "" {
			// Unterminated last line; the error comes back on the next read.
			err = nil
		}
		ch <- line{text: strings.TrimRight(text, "\r\n"), err: err}
	}()

	return ch
}
