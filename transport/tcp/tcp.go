// Package tcp connects [transport.Conn] to TCP sockets of the host.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9293
package tcp

import (
	"net"
	"strconv"

	"github.com/bakwc/htf/network"
	"github.com/bakwc/htf/network/ip"
	ipv4 "github.com/bakwc/htf/network/ip/v4"
	"github.com/bakwc/htf/transport"
)

type Addr struct {
	ipAddr ip.Addr
	port   uint16
}

var _ transport.Addr = Addr{}

func NewAddr(ipAddr ip.Addr, port uint16) Addr {
	return Addr{ipAddr, port}
}

func (a Addr) Port() uint16              { return a.port }
func (a Addr) NetworkAddr() network.Addr { return a.ipAddr }

func (a Addr) String() string {
	host := a.ipAddr.String()
	if a.ipAddr.Version() == 6 {
		host = "[" + host + "]"
	}

	return host + ":" + strconv.FormatUint(uint64(a.port), 10)
}

// addrFromNet converts address of the host network stack.
// Non-ipv4 addresses are left as nil.
func addrFromNet(na net.Addr) transport.Addr {
	tcpAddr, ok := na.(*net.TCPAddr)
	if !ok {
		return nil
	}

	v4, err := ipv4.AddrFromSlice(tcpAddr.IP.To4())
	if err != nil {
		return nil
	}

	return NewAddr(v4, uint16(tcpAddr.Port))
}
