// Package ndjson reads newline-delimited JSON, the framing used by CLI
// harnesses that stream one JSON message per stdout line.
package ndjson

import (
	"bufio"
	"bytes"
	"io"
)

// Reader yields one line at a time from a newline-delimited stream. Lines
// can be arbitrarily long; blank lines are skipped.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadLine returns the next non-empty line without its trailing newline.
// It returns io.EOF when the stream ends; a final unterminated line is
// returned before the EOF.
func (r *Reader) ReadLine() ([]byte, error) {
	var buf bytes.Buffer
	for {
		chunk, isPrefix, err := r.r.ReadLine()
		if err != nil {
			if buf.Len() > 0 && err == io.EOF {
				return buf.Bytes(), nil
			}
			return nil, err
		}
		buf.Write(chunk)
		if isPrefix {
			continue
		}
		line := buf.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			buf.Reset()
			continue
		}
		return line, nil
	}
}
