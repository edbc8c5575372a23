// Package client fetches resources over HTTP/1.1 with one connection per request.
package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/bakwc/htf/application/http"
	"github.com/bakwc/htf/application/util/domain"
	"github.com/bakwc/htf/application/util/uri"
	"github.com/bakwc/htf/network/ip"
	ipv4 "github.com/bakwc/htf/network/ip/v4"
	"github.com/bakwc/htf/transport"
	"github.com/bakwc/htf/transport/tcp"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

var ErrNotInitialized = errors.New("client has no dialer or lookuper")

// Client holds configuration only. Each fetch owns its connection,
// so a Client can be used from multiple goroutines.
type Client struct {
	opts Options

	logger *slog.Logger
	clock  clock.Clock

	lookuper   domain.Lookuper
	connDialer transport.ConnDialer

	combineAddr CombineAddrFunc
}

type CombineAddrFunc func(net ip.Addr, port uint16) transport.Addr

func New(
	d transport.ConnDialer,
	lookuper domain.Lookuper,
	logger *slog.Logger,
	clock clock.Clock,
	opts Options,
) *Client {
	client := &Client{
		connDialer: d,
		lookuper:   lookuper,
		logger:     logger,
		opts:       opts,
		clock:      clock,
	}

	client.combineAddr = func(net ip.Addr, port uint16) transport.Addr {
		return tcp.NewAddr(net, port)
	}

	return client
}

// Fetch sends GET request for rawURL and reads the whole response.
// It never fails; what went wrong is reported by [Result.Kind].
//
// timeout bounds name lookup, dial and every single read and write.
// Zero timeout means no deadline.
func (c *Client) Fetch(ctx context.Context, rawURL string, headers *http.Headers, timeout time.Duration) Result {
	res, _ := c.do(ctx, rawURL, headers, timeout)
	return res
}

// GetURL is [Client.Fetch] returning only the content.
// Unsuccessful fetch returns *[Error].
func (c *Client) GetURL(ctx context.Context, rawURL string, headers *http.Headers, timeout time.Duration) ([]byte, error) {
	res, err := c.do(ctx, rawURL, headers, timeout)
	if res.Kind != Success {
		return nil, &Error{Kind: res.Kind, Code: res.Code, cause: err}
	}
	return res.Content, nil
}

func (c *Client) do(ctx context.Context, rawURL string, headers *http.Headers, timeout time.Duration) (Result, error) {
	logger := c.logger.With("url", rawURL)

	response, err := c.fetch(ctx, logger, rawURL, headers, timeout)
	if err != nil {
		kind, cause := SocketError, err
		var fe *Error
		if errors.As(err, &fe) {
			kind, cause = fe.Kind, fe.cause
		}

		logger.Warn("fetch failed", "kind", kind.String(), "error", cause)
		return failedResult(kind), cause
	}

	return Result{
		Kind:        Success,
		Code:        response.StatusCode,
		Headers:     response.Headers,
		ResolvedURL: rawURL,
		Content:     response.Body,
	}, nil
}

func (c *Client) fetch(
	ctx context.Context,
	logger *slog.Logger,
	rawURL string,
	headers *http.Headers,
	timeout time.Duration,
) (*http.Response, error) {
	if c.connDialer == nil || c.lookuper == nil {
		return nil, fail(InitializationError, ErrNotInitialized)
	}

	addr, err := uri.Parse(rawURL)
	if err != nil {
		return nil, fail(WrongURL, errors.Wrap(err, "parsing url"))
	}

	target, err := c.convertToAddr(ctx, addr, timeout)
	if err != nil {
		return nil, err
	}

	conn, err := c.dial(ctx, target, timeout)
	if err != nil {
		return nil, fail(ConnectionTimeout, errors.Wrapf(err, "dialing %s", target))
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debug("error when closing connection", "error", err)
		}
	}()

	logger.Debug("connected", "addr", target.String())

	dc := &deadlineConn{conn: conn, clock: c.clock, timeout: timeout}

	enc := http.NewRequestEncoder(dc, c.opts.Send.Encode)
	if err := enc.Encode(addr, headers); err != nil {
		return nil, fail(streamErrKind(err), errors.Wrap(err, "sending request"))
	}

	logger.Debug("request sent")

	var response http.Response
	dec := http.NewResponseDecoder(dc, c.opts.Receive.Decode)
	if err := dec.Decode(&response); err != nil {
		kind := streamErrKind(err)
		if http.IsMalformed(err) {
			kind = HTTPError
		}
		return nil, fail(kind, errors.Wrap(err, "receiving response"))
	}

	logger.Debug("response received", "status", response.StatusCode, "length", len(response.Body))

	return &response, nil
}

func (c *Client) convertToAddr(ctx context.Context, addr uri.Address, timeout time.Duration) (transport.Addr, error) {
	var ipAddr ip.Addr
	if parsed, err := ipv4.ParseAddr(addr.Host); err == nil {
		ipAddr = parsed
	} else {
		// Host is a domain name. Resolve it to the ip address.
		ctx, cancel := c.withTimeout(ctx, timeout)
		defer cancel()

		result, err := c.lookuper.LookupIP(ctx, addr.Host)
		if err != nil {
			kind := ResolveError
			if errors.Is(err, domain.ErrDomainNotFound) {
				kind = HostNotFound
			}
			return nil, fail(kind, errors.Wrapf(err, "lookup for host(%s) failed", addr.Host))
		}

		if len(result) == 0 {
			return nil, fail(HostNotFound, errors.Wrapf(domain.ErrDomainNotFound, "no address for host(%s)", addr.Host))
		}

		// Lets simply use the first address.
		ipAddr = result[0]
	}

	return c.combineAddr(ipAddr, addr.Port), nil
}

func (c *Client) dial(ctx context.Context, addr transport.Addr, timeout time.Duration) (transport.Conn, error) {
	ctx, cancel := c.withTimeout(ctx, timeout)
	defer cancel()

	return c.connDialer.Dial(ctx, addr)
}

func (c *Client) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return c.clock.WithTimeout(ctx, timeout)
}

func fail(kind ResultKind, err error) error {
	return &Error{Kind: kind, Code: -1, cause: err}
}

func streamErrKind(err error) ResultKind {
	if errors.Is(err, transport.ErrDeadLineExceeded) {
		return SocketTimeout
	}
	return SocketError
}

// deadlineConn pushes the deadline of conn forward before every read and write,
// so that timeout applies to each operation instead of the whole exchange.
type deadlineConn struct {
	conn    transport.Conn
	clock   clock.Clock
	timeout time.Duration
}

func (dc *deadlineConn) Read(p []byte) (int, error) {
	if dc.timeout > 0 {
		dc.conn.SetReadDeadLine(dc.clock.Now().Add(dc.timeout))
	}
	return dc.conn.Read(p)
}

func (dc *deadlineConn) Write(p []byte) (int, error) {
	if dc.timeout > 0 {
		dc.conn.SetWriteDeadLine(dc.clock.Now().Add(dc.timeout))
	}
	return dc.conn.Write(p)
}
