package uri

import (
	"strconv"
	"strings"

	"github.com/bakwc/htf/application/util/rule"

	"github.com/pkg/errors"
)

const (
	SchemeHTTP  = "http"
	DefaultPort = uint16(80)

	httpPrefix     = SchemeHTTP + "://"
	schemeSplitter = "://"
)

var (
	ErrEmptyURL          = errors.New("url is empty")
	ErrEmptyHost         = errors.New("host is empty")
	ErrInvalidPort       = errors.New("port is not a valid number")
	ErrInvalidCharacter  = errors.New("url contains control character or space")
	ErrUnsupportedScheme = errors.New("scheme is not supported")
)

// Address holds everything needed to connect and address a resource.
// Path always starts with '/'.
type Address struct {
	Protocol string // informational only
	Host     string
	Port     uint16
	Path     string
}

// HostPort returns "host:port".
func (a Address) HostPort() string {
	return a.Host + ":" + strconv.FormatUint(uint64(a.Port), 10)
}

func (a Address) String() string {
	b := new(strings.Builder)
	if a.Protocol != "" {
		b.WriteString(a.Protocol)
		b.WriteString(schemeSplitter)
	}
	b.WriteString(a.HostPort())
	b.WriteString(a.Path)
	return b.String()
}

// Parse decomposes rawURL into [Address].
//
// A leading "http://" is stripped. Everything before the first '/' is
// host[:port] and everything from it on is the path, which defaults to "/".
// The port is split off even when there is no path.
func Parse(rawURL string) (Address, error) {
	if rawURL == "" {
		return Address{}, ErrEmptyURL
	}
	if containsCTL(rawURL) || strings.IndexByte(rawURL, rule.SP) >= 0 {
		// These would break the request line.
		return Address{}, ErrInvalidCharacter
	}

	addr := Address{Port: DefaultPort, Path: "/"}

	rest := rawURL
	if strings.HasPrefix(rest, httpPrefix) {
		addr.Protocol = SchemeHTTP
		rest = rest[len(httpPrefix):]
	} else if scheme, _, found := strings.Cut(rest, schemeSplitter); found && assertValidScheme(scheme) == nil {
		return Address{}, errors.Wrapf(ErrUnsupportedScheme, "%q", scheme)
	}

	hostPort := rest
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		hostPort, addr.Path = rest[:idx], rest[idx:]
	}

	host, portRaw, hasPort := strings.Cut(hostPort, ":")
	if hasPort {
		port, err := parsePort(portRaw)
		if err != nil {
			return Address{}, err
		}
		addr.Port = port
	}

	if host == "" {
		return Address{}, ErrEmptyHost
	}
	addr.Host = host

	return addr, nil
}

func parsePort(raw string) (uint16, error) {
	if !rule.IsDigits(raw) {
		return 0, errors.Wrapf(ErrInvalidPort, "%q", raw)
	}

	port, err := strconv.ParseUint(raw, 10, 16)
	if err != nil || port == 0 {
		return 0, errors.Wrapf(ErrInvalidPort, "%q is out of range", raw)
	}

	return uint16(port), nil
}
