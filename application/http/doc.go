// Package http speaks just enough HTTP/1.1 to issue a GET request and read its response
// from a raw byte stream.
//
// The request always carries "Connection: close", so a response body is simply
// everything the server sends after the header section until it closes the stream.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
//
// - https://datatracker.ietf.org/doc/html/rfc9112
package http
