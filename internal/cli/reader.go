package cli

import (
	"bufio"
	"fmt"
	"golang.org/x/term"
	"io"
	"os"
)

type lineReader interface {
	// ReadLine returns io.EOF once input is exhausted. Secret lines are not echoed when possible.
	ReadLine(secret bool) (string, error)
}

type terminalReader struct {
	scanner  *bufio.Scanner
	out      io.Writer
	fd       int
	terminal bool
}

// NewTerminalReader reads lines from in, hiding secrets when in is an interactive terminal.
func NewTerminalReader(in *os.File, out io.Writer) lineReader {
	fd := int(in.Fd())
	return &terminalReader{
		scanner:  bufio.NewScanner(in),
		out:      out,
		fd:       fd,
		terminal: term.IsTerminal(fd),
	}
}

// NewReader reads plain lines, secrets included.
func NewReader(in io.Reader) lineReader {
	return &terminalReader{scanner: bufio.NewScanner(in)}
}

func (r *terminalReader) ReadLine(secret bool) (string, error) {
	if secret && r.terminal {
		line, err := term.ReadPassword(r.fd)
		_, _ = fmt.Fprintln(r.out)
		return string(line), err
	}

	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
