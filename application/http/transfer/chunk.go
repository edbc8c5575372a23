package transfer

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/bakwc/htf/application/util/rule"
	bytesutil "github.com/bakwc/htf/util/bytes"

	"github.com/pkg/errors"
)

var ErrMalformedChunk = errors.New("chunk is malformed")

type Chunk struct {
	Size       uint
	Extensions [][2]string
	data       io.Reader
}

// ChunkedReader converts chunked http message into byte stream.
// Reading stops at the last chunk. Trailer fields after it are left unread.
type ChunkedReader struct {
	br       *bufio.Reader
	chunk    *Chunk
	read     uint // reset for each chunk
	crlfDump []byte
	done     bool
}

var _ io.Reader = (*ChunkedReader)(nil)

func NewChunkedReader(r io.Reader) *ChunkedReader {
	return &ChunkedReader{
		br:       bufio.NewReader(r),
		crlfDump: make([]byte, 2),
	}
}

func (cr *ChunkedReader) Read(b []byte) (int, error) {
	if cr.done {
		return 0, io.EOF
	}

	if cr.chunk == nil {
		if err := cr.decodeChunk(); err != nil {
			return 0, errors.Wrap(err, "decoding chunk")
		}

		if cr.chunk.Size == 0 {
			// Last chunk.
			cr.done = true
			return 0, io.EOF
		}
	}

	remain := cr.chunk.Size - cr.read
	if uint(len(b)) > remain {
		b = b[:remain]
	}

	n, err := cr.chunk.data.Read(b)
	cr.read += uint(n)
	if err != nil {
		return n, wrapReadErr(err, "reading chunk data")
	}

	if cr.read == cr.chunk.Size {
		if _, err := io.ReadFull(cr.chunk.data, cr.crlfDump); err != nil {
			return n, wrapReadErr(err, "reading chunk delimiter")
		}

		if !bytes.Equal(cr.crlfDump, rule.CRLF) {
			return n, errors.Wrap(ErrMalformedChunk, "CRLF delimiter not found")
		}

		cr.chunk = nil
		cr.read = 0
	}

	return n, nil
}

func (cr *ChunkedReader) decodeChunk() error {
	line, err := bytesutil.ReadLine(cr.br)
	if err != nil {
		return wrapReadErr(err, "reading chunk size")
	}

	parts := bytes.Split(line, []byte{';'})

	sizeRaw := bytes.TrimFunc(parts[0], rule.IsWhitespace)
	chunkSize, err := decodeChunkSize(sizeRaw)
	if err != nil {
		return errors.Wrap(err, "decoding chunk size")
	}

	// Decode chunk extensions
	parts = parts[1:]
	extensions := make([][2]string, 0)
	for _, part := range parts {
		k, v, _ := bytes.Cut(part, []byte{'='})
		// Trim BWS.
		k = bytes.TrimFunc(k, rule.IsWhitespace)
		v = bytes.TrimFunc(v, rule.IsWhitespace)

		extensions = append(extensions, [2]string{string(k), string(v)})
	}

	cr.chunk = &Chunk{
		Size:       chunkSize,
		Extensions: extensions,
		data:       cr.br,
	}

	return nil
}

func decodeChunkSize(b []byte) (uint, error) {
	size, err := strconv.ParseUint(string(b), 16, strconv.IntSize)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedChunk, "failed to decode hex: %q", string(b))
	}

	return uint(size), nil
}

// wrapReadErr reports premature end of the chunked stream as [ErrMalformedChunk].
func wrapReadErr(err error, msg string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrMalformedChunk, msg+": unexpected end of chunked body")
	}
	return errors.Wrap(err, msg)
}

type ChunkedWriter struct {
	w         io.Writer
	headerBuf *bytes.Buffer

	extensions [][2]string
}

var _ io.WriteCloser = (*ChunkedWriter)(nil)

// NewChunkedWriter creates [ChunkedWriter]. Close writes the last chunk,
// but doesn't close w.
func NewChunkedWriter(w io.Writer) *ChunkedWriter {
	return &ChunkedWriter{
		w:         w,
		headerBuf: bytes.NewBuffer(nil),
	}
}

// SetExtensions sets extension to the chunk.
// extension lives until [ChunkedWriter.Write].
func (cw *ChunkedWriter) SetExtensions(extensions [][2]string) {
	cw.extensions = extensions
}

func (cw *ChunkedWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		// We should ignore 0 length chunks since it means EOF.
		return 0, nil
	}

	chunk := Chunk{
		Size:       uint(len(p)),
		Extensions: cw.extensions,
		data:       bytes.NewBuffer(p),
	}

	cw.extensions = nil

	n, err = cw.encodeChunk(chunk)
	if err != nil {
		return n, errors.Wrap(err, "encoding chunk")
	}

	return n, nil
}

// Close writes the last chunk followed by an empty trailer section.
func (cw *ChunkedWriter) Close() error {
	chunk := Chunk{
		Size:       0,
		Extensions: cw.extensions,
	}

	if _, err := cw.encodeChunk(chunk); err != nil {
		return errors.Wrap(err, "encoding chunk")
	}

	if err := writeLine(cw.w, nil); err != nil {
		return errors.Wrap(err, "writing last trailer line")
	}

	return nil
}

func (cw *ChunkedWriter) encodeChunk(chunk Chunk) (n int, err error) {
	// size and extensions
	buf := cw.headerBuf
	buf.Reset()
	buf.Write([]byte(strconv.FormatUint(uint64(chunk.Size), 16)))
	for _, ext := range chunk.Extensions {
		buf.Write([]byte{';'})
		buf.Write([]byte(ext[0]))
		buf.Write([]byte{'='})
		buf.Write([]byte(ext[1]))
	}

	if err := writeLine(cw.w, buf.Bytes()); err != nil {
		return 0, errors.Wrap(err, "writing chunk header")
	}

	if chunk.Size == 0 {
		// Last chunk. only write header.
		return 0, nil
	}

	// chunk data + CRLF
	r := io.MultiReader(chunk.data, bytes.NewReader(rule.CRLF))

	n64, err := io.Copy(cw.w, r)
	if err != nil {
		return n, errors.Wrap(err, "writing data")
	}

	return int(n64) - len(rule.CRLF), nil
}

func writeLine(w io.Writer, line []byte) error {
	r := bytes.NewReader(append(line, rule.CRLF...))

	_, err := io.Copy(w, r)
	if err != nil {
		return errors.Wrap(err, "writing line")
	}

	return nil
}
