package domain

import (
	"context"
	"testing"

	"github.com/bakwc/htf/network/ip"
	ipv4 "github.com/bakwc/htf/network/ip/v4"

	"github.com/stretchr/testify/suite"
)

type LookuperTestSuite struct {
	suite.Suite

	initial  map[string][]ip.Addr
	lookuper Lookuper
}

func (s *LookuperTestSuite) SetupTest() {
	s.initial = map[string][]ip.Addr{
		"localhost":   {ipv4.Addr{127, 0, 0, 1}},
		"example.com": {ipv4.Addr{1, 1, 1, 1}}, // It's actually cloudflare. But who cares?
	}
}

func (s *LookuperTestSuite) TestLookup() {
	addrs, err := s.lookuper.LookupIP(context.Background(), "localhost")
	s.NoError(err)
	s.Equal([]ip.Addr{ipv4.Addr{127, 0, 0, 1}}, addrs)

	addrs, err = s.lookuper.LookupIP(context.Background(), "example.com")
	s.NoError(err)
	s.Equal([]ip.Addr{ipv4.Addr{1, 1, 1, 1}}, addrs)

	// Non-existent.
	addrs, err = s.lookuper.LookupIP(context.Background(), "non-existent.com")
	s.ErrorIs(err, ErrDomainNotFound)
	s.Zero(addrs)
}

func (s *LookuperTestSuite) TestLookupInitCopied() {
	s.initial["localhost"] = []ip.Addr{ipv4.Addr{6, 6, 6, 6}}

	addrs, err := s.lookuper.LookupIP(context.Background(), "localhost")
	s.NoError(err)
	s.Equal([]ip.Addr{ipv4.Addr{127, 0, 0, 1}}, addrs)
}

type mapLookuperTestSuite struct{ LookuperTestSuite }

func TestMapLookuperTestSuite(t *testing.T) {
	suite.Run(t, new(mapLookuperTestSuite))
}

func (s *mapLookuperTestSuite) SetupTest() {
	s.LookuperTestSuite.SetupTest()
	s.lookuper = NewMapLookuper(s.initial)
}

func (s *mapLookuperTestSuite) TestSetDel() {
	m := s.lookuper.(*mapLookuper)

	m.Set("new.example", []ip.Addr{ipv4.Addr{10, 0, 0, 1}})
	addrs, err := m.LookupIP(context.Background(), "new.example")
	s.NoError(err)
	s.Len(addrs, 1)

	// Empty set is ignored.
	m.Set("empty.example", nil)
	_, err = m.LookupIP(context.Background(), "empty.example")
	s.ErrorIs(err, ErrDomainNotFound)

	m.Del("new.example")
	_, err = m.LookupIP(context.Background(), "new.example")
	s.ErrorIs(err, ErrDomainNotFound)
}
