package bytesutil

import (
	"bufio"
	"bytes"
	"io"
)

var crlf = []byte("\r\n")

// ReadUntil reads from r up to and including delim.
// A stream ending before delim gives io.ErrUnexpectedEOF.
func ReadUntil(r *bufio.Reader, delim []byte) ([]byte, error) {
	last := delim[len(delim)-1]

	var line []byte
	for !bytes.HasSuffix(line, delim) {
		b, err := r.ReadBytes(last)
		switch {
		case err == io.EOF:
			return nil, io.ErrUnexpectedEOF
		case err != nil:
			return nil, err
		}
		line = append(line, b...)
	}

	return line, nil
}

// ReadLine reads a CRLF terminated line from r and returns it without the CRLF.
// A bare LF does not end the line.
func ReadLine(r *bufio.Reader) ([]byte, error) {
	line, err := ReadUntil(r, crlf)
	if err != nil {
		return nil, err
	}
	return line[:len(line)-len(crlf)], nil
}
