package http

import (
	"bytes"
	"io"
	"strconv"

	"github.com/bakwc/htf/application/http/transfer"
	"github.com/bakwc/htf/application/util/rule"
	iolib "github.com/bakwc/htf/lib/io"

	"github.com/pkg/errors"
)

const fieldTransferEncoding = "Transfer-Encoding"

type DecodeOptions struct {
	// ReadBufferSize sets how many bytes are asked from the stream per read.
	ReadBufferSize int

	// MaxHeadLength limits the length of status line and headers together.
	// It's not on the RFC but I think it's better to have it.
	// Zero means no limit.
	MaxHeadLength uint

	// FoldHeaderCase makes "transfer-encoding" count as Transfer-Encoding.
	// Stored header names are never altered.
	FoldHeaderCase bool
}

var DefaultDecodeOptions = DecodeOptions{
	ReadBufferSize: 2000,
	MaxHeadLength:  0,
	FoldHeaderCase: false,
}

var (
	ErrMissingHeadTerminator = errors.New("stream ended before end of header section")
	ErrHeadTooLong           = errors.New("header section length exceeds limit")
	ErrMalformedStatusLine   = errors.New("status line is malformed")
)

// IsMalformed reports whether err was caused by a response violating HTTP message framing,
// as opposed to a failure of the underlying stream.
func IsMalformed(err error) bool {
	for _, target := range []error{
		ErrMissingHeadTerminator,
		ErrHeadTooLong,
		ErrMalformedStatusLine,
		ErrMalformedFieldLine,
		transfer.ErrMalformedChunk,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type ResponseDecoder struct {
	ur   *iolib.UntilReader
	opts DecodeOptions
}

func NewResponseDecoder(r io.Reader, opts DecodeOptions) *ResponseDecoder {
	return &ResponseDecoder{
		ur:   iolib.NewUntilReaderSize(r, opts.ReadBufferSize),
		opts: opts,
	}
}

// Decode reads a whole response, body included, until the stream ends.
// r MUST be a non-nil pointer
func (rd *ResponseDecoder) Decode(r *Response) error {
	head, err := rd.readHead()
	if err != nil {
		return errors.Wrap(err, "reading header section")
	}

	var res Response
	if err := parseHead(head, &res); err != nil {
		return errors.Wrap(err, "parsing header section")
	}

	// Bytes read past the header section are already in rd.ur.
	body, err := io.ReadAll(rd.ur)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}

	if rd.isChunked(&res.Headers) {
		body, err = io.ReadAll(transfer.NewChunkedReader(bytes.NewReader(body)))
		if err != nil {
			return errors.Wrap(err, "decoding chunked body")
		}
	}
	res.Body = body

	*r = res

	return nil
}

func (rd *ResponseDecoder) readHead() ([]byte, error) {
	head, err := rd.ur.ReadUntilLimit(rule.HeadTerminator, rd.opts.MaxHeadLength)
	if err == nil {
		return head, nil
	}

	switch {
	case errors.Is(err, iolib.ErrLimitReached):
		return nil, ErrHeadTooLong
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, ErrMissingHeadTerminator
	}

	return nil, err
}

func (rd *ResponseDecoder) isChunked(headers *Headers) bool {
	var coding string
	if rd.opts.FoldHeaderCase {
		coding, _ = headers.Lookup(fieldTransferEncoding)
	} else {
		coding, _ = headers.Get(fieldTransferEncoding)
	}
	return coding == transfer.CodingChunked
}

// lineScanner walks CRLF terminated lines of a buffered header section.
type lineScanner struct {
	b   []byte
	pos int
}

func (ls *lineScanner) next() (line []byte, ok bool) {
	rest := ls.b[ls.pos:]
	idx := bytes.Index(rest, rule.CRLF)
	if idx < 0 {
		return nil, false
	}
	ls.pos += idx + len(rule.CRLF)
	return rest[:idx], true
}

// parseHead parses status line and headers. head must end with an empty line.
func parseHead(head []byte, r *Response) error {
	ls := &lineScanner{b: head}

	line, _ := ls.next()
	if err := parseStatusLine(line, r); err != nil {
		return err
	}

	for {
		line, ok := ls.next()
		if !ok || len(line) == 0 {
			// An empty line. This means that there are no more headers.
			break
		}

		field, err := ParseField(line)
		if err != nil {
			return err
		}

		r.Headers.Set(string(field.Name), string(field.Value))
	}

	return nil
}

// parseStatusLine takes the second space delimited token as status code.
// At least two spaces are required, even with an empty reason phrase.
func parseStatusLine(line []byte, r *Response) error {
	parts := bytes.SplitN(line, []byte{rule.SP}, 3)
	if len(parts) < 3 {
		return errors.Wrapf(ErrMalformedStatusLine, "%q", line)
	}

	statusCodeStr := string(parts[1])
	if !rule.IsDigits(statusCodeStr) {
		return errors.Wrapf(ErrMalformedStatusLine, "status code is malformed: %q", statusCodeStr)
	}

	statusCode, err := strconv.Atoi(statusCodeStr)
	if err != nil {
		return errors.Wrapf(ErrMalformedStatusLine, "status code is malformed: %q", statusCodeStr)
	}

	r.Version = string(parts[0])
	r.StatusCode = statusCode
	r.ReasonPhrase = string(parts[2])

	return nil
}
