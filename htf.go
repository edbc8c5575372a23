// Package htf fetches web pages with plain HTTP/1.1 GET requests.
//
// Every call opens its own connection, asks the server to close it,
// and reads the response until the stream ends.
package htf

import (
	"context"
	"log/slog"
	"time"

	"github.com/bakwc/htf/application/http"
	"github.com/bakwc/htf/application/http/client"
	"github.com/bakwc/htf/application/util/domain"
	"github.com/bakwc/htf/transport/tcp"

	"github.com/benbjohnson/clock"
)

const DefaultTimeout = 30 * time.Second

type (
	Headers    = http.Headers
	Result     = client.Result
	ResultKind = client.ResultKind
	Error      = client.Error
)

var defaultClient = client.New(
	&tcp.Dialer{},
	&domain.NetLookuper{},
	slog.Default(),
	clock.New(),
	client.DefaultOptions,
)

// Fetch gets url over TCP using the system resolver.
// See [client.Client.Fetch].
func Fetch(url string, headers *Headers, timeout time.Duration) Result {
	return defaultClient.Fetch(context.Background(), url, headers, timeout)
}

// GetURL gets content of url, or *[Error] when the fetch was not successful.
func GetURL(url string, headers *Headers, timeout time.Duration) ([]byte, error) {
	return defaultClient.GetURL(context.Background(), url, headers, timeout)
}
