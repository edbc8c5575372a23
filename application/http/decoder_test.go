package http

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/bakwc/htf/application/http/transfer"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ResponseDecoderTestSuite struct {
	suite.Suite
}

func TestResponseDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseDecoderTestSuite))
}

func (s *ResponseDecoderTestSuite) decode(r io.Reader, opts DecodeOptions) (Response, error) {
	var res Response
	err := NewResponseDecoder(r, opts).Decode(&res)
	return res, err
}

func (s *ResponseDecoderTestSuite) TestDecode() {
	testcases := []struct {
		desc     string
		input    string
		expected Response
		wantErr  error
	}{
		{
			desc: "simple response",
			input: "HTTP/1.1 200 OK\r\n" +
				"Content-Type: text/plain\r\n" +
				"Content-Length: 5\r\n" +
				"\r\n" +
				"hello",
			expected: Response{
				Version:      "HTTP/1.1",
				StatusCode:   200,
				ReasonPhrase: "OK",
				Headers: NewHeaders(
					[2]string{"Content-Type", "text/plain"},
					[2]string{"Content-Length", "5"},
				),
				Body: []byte("hello"),
			},
		},
		{
			desc: "reason phrase with spaces",
			input: "HTTP/1.1 404 Not Found\r\n" +
				"\r\n",
			expected: Response{
				Version:      "HTTP/1.1",
				StatusCode:   404,
				ReasonPhrase: "Not Found",
				Body:         []byte{},
			},
		},
		{
			desc: "empty reason phrase",
			input: "HTTP/1.1 204 \r\n" +
				"\r\n",
			expected: Response{
				Version:    "HTTP/1.1",
				StatusCode: 204,
				Body:       []byte{},
			},
		},
		{
			desc: "repeated header keeps last value",
			input: "HTTP/1.1 200 OK\r\n" +
				"X-A: 1\r\n" +
				"X-A: 2\r\n" +
				"\r\n",
			expected: Response{
				Version:      "HTTP/1.1",
				StatusCode:   200,
				ReasonPhrase: "OK",
				Headers:      NewHeaders([2]string{"X-A", "2"}),
				Body:         []byte{},
			},
		},
		{
			desc: "body containing head terminator",
			input: "HTTP/1.1 200 OK\r\n" +
				"\r\n" +
				"a\r\n\r\nb",
			expected: Response{
				Version:      "HTTP/1.1",
				StatusCode:   200,
				ReasonPhrase: "OK",
				Body:         []byte("a\r\n\r\nb"),
			},
		},
		{
			desc: "chunked body",
			input: "HTTP/1.1 200 OK\r\n" +
				"Transfer-Encoding: chunked\r\n" +
				"\r\n" +
				"4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n",
			expected: Response{
				Version:      "HTTP/1.1",
				StatusCode:   200,
				ReasonPhrase: "OK",
				Headers:      NewHeaders([2]string{"Transfer-Encoding", "chunked"}),
				Body:         []byte("Wikipedia"),
			},
		},
		{
			desc: "lower case transfer-encoding is not decoded",
			input: "HTTP/1.1 200 OK\r\n" +
				"transfer-encoding: chunked\r\n" +
				"\r\n" +
				"4\r\nWiki\r\n0\r\n\r\n",
			expected: Response{
				Version:      "HTTP/1.1",
				StatusCode:   200,
				ReasonPhrase: "OK",
				Headers:      NewHeaders([2]string{"transfer-encoding", "chunked"}),
				Body:         []byte("4\r\nWiki\r\n0\r\n\r\n"),
			},
		},
		{
			desc:    "empty stream",
			input:   "",
			wantErr: ErrMissingHeadTerminator,
		},
		{
			desc:    "missing head terminator",
			input:   "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n",
			wantErr: ErrMissingHeadTerminator,
		},
		{
			desc:    "status line with one space",
			input:   "HTTP/1.1 200\r\n\r\n",
			wantErr: ErrMalformedStatusLine,
		},
		{
			desc:    "non numeric status code",
			input:   "HTTP/1.1 abc OK\r\n\r\n",
			wantErr: ErrMalformedStatusLine,
		},
		{
			desc:    "field line without colon",
			input:   "HTTP/1.1 200 OK\r\nbroken\r\n\r\n",
			wantErr: ErrMalformedFieldLine,
		},
		{
			desc: "truncated chunked body",
			input: "HTTP/1.1 200 OK\r\n" +
				"Transfer-Encoding: chunked\r\n" +
				"\r\n" +
				"a\r\nabc",
			wantErr: transfer.ErrMalformedChunk,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			// Deliver the response one byte at a time to exercise reassembly.
			r := iotest.OneByteReader(strings.NewReader(tc.input))

			res, err := s.decode(r, DefaultDecodeOptions)
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				s.True(IsMalformed(err))
				return
			}

			s.Require().NoError(err)
			s.Equal(tc.expected.Version, res.Version)
			s.Equal(tc.expected.StatusCode, res.StatusCode)
			s.Equal(tc.expected.ReasonPhrase, res.ReasonPhrase)
			s.Equal(tc.expected.Headers.Fields(), res.Headers.Fields())
			s.Equal(tc.expected.Body, res.Body)
		})
	}
}

func (s *ResponseDecoderTestSuite) TestDecodeBufferSizes() {
	input := "HTTP/1.1 200 OK\r\n" +
		"Server: test\r\n" +
		"X-Long: " + strings.Repeat("x", 300) + "\r\n" +
		"\r\n" +
		strings.Repeat("body", 100)

	for _, size := range []int{1, 2, 3, 7, 64, 2000} {
		res, err := s.decode(strings.NewReader(input), DecodeOptions{ReadBufferSize: size})
		s.Require().NoError(err, "buffer size %d", size)

		v, _ := res.Headers.Get("X-Long")
		s.Equal(strings.Repeat("x", 300), v)
		s.Equal([]byte(strings.Repeat("body", 100)), res.Body)
	}
}

func (s *ResponseDecoderTestSuite) TestDecodeFoldHeaderCase() {
	input := "HTTP/1.1 200 OK\r\n" +
		"transfer-encoding: chunked\r\n" +
		"\r\n" +
		"4\r\nWiki\r\n0\r\n\r\n"

	opts := DefaultDecodeOptions
	opts.FoldHeaderCase = true

	res, err := s.decode(strings.NewReader(input), opts)
	s.Require().NoError(err)
	s.Equal([]byte("Wiki"), res.Body)

	// Stored names are not altered.
	s.True(res.Headers.Has("transfer-encoding"))
}

func (s *ResponseDecoderTestSuite) TestDecodeHeadTooLong() {
	input := "HTTP/1.1 200 OK\r\n" +
		"X-Long: " + strings.Repeat("x", 100) + "\r\n" +
		"\r\n"

	opts := DefaultDecodeOptions
	opts.MaxHeadLength = 50

	_, err := s.decode(strings.NewReader(input), opts)
	s.ErrorIs(err, ErrHeadTooLong)
	s.True(IsMalformed(err))

	opts.MaxHeadLength = uint(len(input))
	_, err = s.decode(strings.NewReader(input), opts)
	s.NoError(err)
}

func (s *ResponseDecoderTestSuite) TestDecodeCutHeadUnderLimit() {
	opts := DefaultDecodeOptions
	opts.MaxHeadLength = 50

	// Stream ends before the limit, so the head is cut rather than too long.
	_, err := s.decode(strings.NewReader("HTTP/1.1 200 OK\r\nA: B"), opts)
	s.ErrorIs(err, ErrMissingHeadTerminator)
	s.NotErrorIs(err, ErrHeadTooLong)
}

func (s *ResponseDecoderTestSuite) TestDecodeStreamError() {
	errStream := errors.New("connection reset")
	r := io.MultiReader(
		strings.NewReader("HTTP/1.1 200 OK\r\n\r\npartial"),
		iotest.ErrReader(errStream),
	)

	_, err := s.decode(r, DefaultDecodeOptions)
	s.ErrorIs(err, errStream)
	s.False(IsMalformed(err))
}

func (s *ResponseDecoderTestSuite) TestDecodeKeepsResponseOnError() {
	res := Response{StatusCode: -1}
	err := NewResponseDecoder(bytes.NewReader([]byte("garbage")), DefaultDecodeOptions).Decode(&res)
	s.Error(err)
	s.Equal(-1, res.StatusCode)
}
