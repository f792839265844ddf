package dyn

import (
	"bufio"
	"io"
	"strings"
)

// cursor is a forward-only line reader with one line of look-ahead.
type cursor struct {
	r      *bufio.Reader
	line   int     //number of the last line returned by next
	peeked *string //the look-ahead line, if any
	err    error   //the error that ended the stream
}

func newCursor(r io.Reader) *cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &cursor{r: br}
}

//fill makes sure there is a line in peeked. Returns false at the end of the stream.
func (c *cursor) fill() bool {
	if c.peeked != nil {
		return true
	}
	if c.err != nil {
		return false
	}
	l, err := c.r.ReadString('\n')
	if err != nil && (l == "" || err != io.EOF) {
		c.err = err
		return false
	}
	//A last line without newline is still a line, the EOF will show up in the next call.
	l = strings.TrimRight(l, "\r\n")
	c.peeked = &l
	return true
}

// peek returns the next line without consuming it.
func (c *cursor) peek() (string, bool) {
	if !c.fill() {
		return "", false
	}
	return *c.peeked, true
}

// next returns the next line and advances past it.
func (c *cursor) next() (string, bool) {
	if !c.fill() {
		return "", false
	}
	l := *c.peeked
	c.peeked = nil
	c.line++
	return l, true
}

func (c *cursor) atEnd() bool {
	return !c.fill()
}

// endError builds the error for a stream that ended while something was still expected.
// I/O errors other than EOF are kept as the cause.
func (c *cursor) endError(message string, caller string) *FormatError {
	var cause error
	if c.err != nil && c.err != io.EOF {
		cause = c.err
		message = ReadError + ": " + message
	}
	return newFormatError(message, c.line, cause, caller)
}
