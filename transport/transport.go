package transport

import "github.com/bakwc/htf/network"

type Addr interface {
	NetworkAddr() network.Addr
	String() string
}
