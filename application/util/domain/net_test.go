package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetLookuperInvalidName(t *testing.T) {
	n := &NetLookuper{}

	// Rejected by IDNA lookup rules before reaching the resolver.
	addrs, err := n.LookupIP(context.Background(), "-bad_name-.example")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDomainNotFound)
	assert.Nil(t, addrs)
}
