package http

import (
	"bytes"
	"strconv"

	"github.com/bakwc/htf/application/util/rule"

	"github.com/pkg/errors"
)

// [Major, Minor]
type Version [2]uint

var Version11 = Version{1, 1}

func (ver Version) Text() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write([]byte("HTTP/"))
	buf.Write([]byte(strconv.FormatUint(uint64(ver[0]), 10)))
	buf.Write([]byte{'.'})
	buf.Write([]byte(strconv.FormatUint(uint64(ver[1]), 10)))
	return buf.Bytes()
}

func (ver Version) String() string { return string(ver.Text()) }

type Field struct{ Name, Value []byte }

var ErrMalformedFieldLine = errors.New("field line is malformed")

// ParseField splits fieldLine at the first colon.
// The value starts two bytes after the colon, skipping the conventional single space.
// Nothing else is trimmed.
func ParseField(fieldLine []byte) (Field, error) {
	colon := bytes.IndexByte(fieldLine, ':')
	if colon < 0 {
		return Field{}, errors.Wrapf(ErrMalformedFieldLine, "colon seperator not found on header: %q", string(fieldLine))
	}

	var value []byte
	if start := colon + 2; start < len(fieldLine) {
		value = fieldLine[start:]
	}

	return Field{Name: fieldLine[:colon], Value: value}, nil
}

func (f *Field) Text() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(f.Name)
	buf.Write([]byte{':', rule.SP})
	buf.Write(f.Value)
	return buf.Bytes()
}

type Response struct {
	Version      string // as received, not validated
	StatusCode   int
	ReasonPhrase string

	Headers Headers
	Body    []byte
}
