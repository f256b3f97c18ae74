package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type lineResult struct {
	line string
	err  error
}

// LineReader reads operator input one line at a time. A read abandoned
// because ctx ended stays pending and is delivered to the next ReadLine.
type LineReader struct {
	r       *bufio.Reader
	w       io.Writer
	pending chan lineResult
}

func NewLineReader(r io.Reader, w io.Writer) *LineReader {
	return &LineReader{r: bufio.NewReader(r), w: w}
}

// ReadLine prints prompt and waits for the next line, without its line
// ending. It returns io.EOF once the input is exhausted.
func (l *LineReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(l.w, promptStyle.Render(prompt))
	}

	if l.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := l.r.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		l.pending = ch
	}

	select {
	case res := <-l.pending:
		l.pending = nil
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && line != "" {
				return line, nil
			}
			return "", res.err
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
