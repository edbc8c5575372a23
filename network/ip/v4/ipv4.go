package ipv4

import (
	"strconv"
	"strings"

	"github.com/bakwc/htf/network/ip"

	"github.com/pkg/errors"
)

type Addr [4]byte

func ParseAddr(s string) (Addr, error) {
	digits := strings.Split(s, ".")
	if len(digits) != 4 {
		return Addr{}, errors.New("digits are not properly seperated")
	}

	var addr Addr
	for idx, digit := range digits {
		n, err := strconv.ParseUint(digit, 10, 8)
		if err != nil {
			return Addr{}, errors.Wrap(err, "failed to parse a part into digit")
		}

		if digit[0] == '0' && !(n == 0 && len(digit) == 1) {
			// '00', '01'
			return Addr{}, errors.New("leading zero is not allowed in digit")
		}
		addr[idx] = byte(n)
	}

	return addr, nil
}

// AddrFromSlice converts 4-byte slice into [Addr].
func AddrFromSlice(b []byte) (Addr, error) {
	if len(b) != 4 {
		return Addr{}, errors.Errorf("ipv4 address must be 4 bytes long, got %d", len(b))
	}
	var addr Addr
	copy(addr[:], b)
	return addr, nil
}

func (a Addr) Raw() []byte   { return a[:] }
func (a Addr) Version() uint { return 4 }

func (a Addr) String() string {
	parts := make([]string, 0, len(a))
	for _, b := range a {
		parts = append(parts, strconv.FormatUint(uint64(b), 10))
	}
	return strings.Join(parts, ".")
}

func (a Addr) ToUint32() uint32 {
	return uint32(a[0])<<24 | uint32(a[1])<<16 | uint32(a[2])<<8 | uint32(a[3])
}

var _ ip.Addr = Addr{}
