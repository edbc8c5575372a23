package tcp

import (
	"context"
	"io"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/bakwc/htf/transport"

	"github.com/pkg/errors"
)

// Dialer opens IPv4 TCP connections through the host network stack.
type Dialer struct{}

var _ transport.ConnDialer = (*Dialer)(nil)

func (d *Dialer) Dial(ctx context.Context, addr transport.Addr) (transport.Conn, error) {
	var nd net.Dialer
	nc, err := nd.DialContext(ctx, "tcp4", addr.String())
	if err != nil {
		return nil, convertErr(err)
	}

	return &conn{nc: nc}, nil
}

type conn struct {
	nc net.Conn
}

var _ transport.Conn = (*conn)(nil)

func (c *conn) Read(p []byte) (n int, err error) {
	n, err = c.nc.Read(p)
	if err != nil && err != io.EOF {
		err = convertErr(err)
	}
	return n, err
}

func (c *conn) Write(p []byte) (n int, err error) {
	n, err = c.nc.Write(p)
	if err != nil {
		err = convertErr(err)
	}
	return n, err
}

func (c *conn) Close() error {
	if err := c.nc.Close(); err != nil {
		return convertErr(err)
	}
	return nil
}

func (c *conn) LocalAddr() transport.Addr  { return addrFromNet(c.nc.LocalAddr()) }
func (c *conn) RemoteAddr() transport.Addr { return addrFromNet(c.nc.RemoteAddr()) }

// Errors are ignored since they only occur on closed connection,
// which will be reported on next read or write.
func (c *conn) SetReadDeadLine(t time.Time)  { _ = c.nc.SetReadDeadline(t) }
func (c *conn) SetWriteDeadLine(t time.Time) { _ = c.nc.SetWriteDeadline(t) }

// convertErr maps errors of the host network stack into errors of package transport.
func convertErr(err error) error {
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(transport.ErrDeadLineExceeded, err.Error())
	case errors.Is(err, net.ErrClosed):
		return errors.Wrap(transport.ErrConnClosed, err.Error())
	case errors.Is(err, syscall.ECONNREFUSED):
		return errors.Wrap(transport.ErrConnRefused, err.Error())
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return errors.Wrap(transport.ErrNetUnreachable, err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(transport.ErrDeadLineExceeded, err.Error())
	}

	return err
}
