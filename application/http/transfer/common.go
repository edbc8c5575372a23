// Package transfer implements chunked transfer coding.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-7.1
package transfer

type Coding = string

const (
	CodingChunked Coding = "chunked"
)
