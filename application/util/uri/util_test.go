package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertValidScheme(t *testing.T) {
	testcases := []struct {
		desc    string
		input   string
		wantErr bool
	}{
		{
			desc:    "single char (alpha)",
			input:   "A",
			wantErr: false,
		},
		{
			desc:    "example",
			input:   "http",
			wantErr: false,
		},
		{
			desc:    "'+', '-', '.' are allowed",
			input:   "ht+-.tp",
			wantErr: false,
		},
		{
			desc:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			desc:    "first char not alpha",
			input:   "+http",
			wantErr: true,
		},
		{
			desc:    "invalid char",
			input:   "ht=tp",
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			err := assertValidScheme(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestContainsCTL(t *testing.T) {
	assert.False(t, containsCTL("example.com/a/b?c=d"))
	assert.True(t, containsCTL("example.com/\r\nHost: evil"))
	assert.True(t, containsCTL("example.com/\x7f"))
}
