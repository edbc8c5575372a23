package ip

import "github.com/bakwc/htf/network"

type Addr interface {
	network.Addr

	Version() uint
}
