package http

import (
	"bytes"
	"io"

	"github.com/bakwc/htf/application/util/rule"
	"github.com/bakwc/htf/application/util/uri"
	iolib "github.com/bakwc/htf/lib/io"

	"github.com/pkg/errors"
)

const (
	MethodGet = "GET"

	fieldHost       = "Host"
	fieldConnection = "Connection"
	connectionClose = "close"
)

type EncodeOptions struct {
	// FoldHeaderCase makes caller's "host" or "HOST" count as Host header.
	// By default only the exact name "Host" suppresses the generated one.
	FoldHeaderCase bool
}

var DefaultEncodeOptions = EncodeOptions{
	FoldHeaderCase: false,
}

// BuildRequest produces the request line and header section of a GET request for addr.
//
// Host is generated unless headers already has it.
// Caller's headers follow in insertion order, and "Connection: close" always comes last.
func BuildRequest(addr uri.Address, headers *Headers) []byte {
	return buildRequest(addr, headers, DefaultEncodeOptions)
}

func buildRequest(addr uri.Address, headers *Headers, opts EncodeOptions) []byte {
	if headers == nil {
		headers = &Headers{}
	}

	buf := bytes.NewBuffer(nil)
	writeLine := func(line []byte) {
		buf.Write(line)
		buf.Write(rule.CRLF)
	}

	// Request line.
	buf.WriteString(MethodGet)
	buf.WriteByte(rule.SP)
	buf.WriteString(addr.Path)
	buf.WriteByte(rule.SP)
	writeLine(Version11.Text())

	hasHost := headers.Has(fieldHost)
	if opts.FoldHeaderCase {
		_, hasHost = headers.Lookup(fieldHost)
	}
	if !hasHost {
		f := Field{Name: []byte(fieldHost), Value: []byte(addr.Host)}
		writeLine(f.Text())
	}

	for _, kv := range headers.Fields() {
		f := Field{Name: []byte(kv[0]), Value: []byte(kv[1])}
		writeLine(f.Text())
	}

	// The response body is read until EOF, which is only safe
	// because the server is asked to close the connection.
	f := Field{Name: []byte(fieldConnection), Value: []byte(connectionClose)}
	writeLine(f.Text())
	writeLine(nil)

	return buf.Bytes()
}

type RequestEncoder struct {
	w    io.Writer
	opts EncodeOptions
}

func NewRequestEncoder(w io.Writer, opts EncodeOptions) *RequestEncoder {
	return &RequestEncoder{w: w, opts: opts}
}

// Encode writes the whole request, retrying short writes.
func (re *RequestEncoder) Encode(addr uri.Address, headers *Headers) error {
	request := buildRequest(addr, headers, re.opts)

	if _, err := iolib.WriteFull(re.w, request); err != nil {
		return errors.Wrap(err, "writing request")
	}

	return nil
}
