// Package uri decomposes an http URL into the parameters needed to open a
// connection and write a request line.
//
// Only a literal "http://" prefix is understood. There is no percent-decoding,
// no query or fragment handling and no IP literal support.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-4.2.1
package uri
