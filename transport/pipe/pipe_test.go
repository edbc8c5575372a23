package pipe

import (
	"io"
	"testing"
	"time"

	"github.com/bakwc/htf/transport"
	"github.com/bakwc/htf/transport/test"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
)

type PipeTestSuite struct {
	test.ConnTestSuite
}

func TestPipeTestSuite(t *testing.T) {
	suite.Run(t, new(PipeTestSuite))
}

func (s *PipeTestSuite) SetupTest() {
	s.ConnTestSuite.SetupTest()
	s.C1, s.C2 = NewPair("A", "B", s.Clock)
}

func (s *PipeTestSuite) TestReadDeadLineMockClock() {
	mock := clock.NewMock()
	c1, c2 := NewPair("A", "B", mock)
	defer c1.Close()
	defer c2.Close()

	c1.SetReadDeadLine(mock.Now().Add(time.Second))

	errCh := make(chan error, 1)
	go func() {
		_, err := c1.Read(make([]byte, 1))
		errCh <- err
	}()

	// Give the reader a chance to block before the deadline fires.
	time.Sleep(20 * time.Millisecond)
	mock.Add(time.Second)

	select {
	case err := <-errCh:
		s.ErrorIs(err, transport.ErrDeadLineExceeded)
	case <-time.After(time.Second):
		s.FailNow("deadline didn't fire")
	}
}

func (s *PipeTestSuite) TestDeadLineReset() {
	s.C1.SetReadDeadLine(s.Clock.Now().Add(-time.Second))
	s.C1.SetReadDeadLine(time.Time{})

	go func() {
		_, err := s.C2.Write([]byte("a"))
		s.NoError(err)
	}()

	b := make([]byte, 1)
	n, err := s.C1.Read(b)
	s.NoError(err)
	s.Equal(1, n)
}

func (s *PipeTestSuite) TestEOFAfterWrites() {
	data := []byte("fragment")

	go func() {
		for i := range data {
			_, err := s.C2.Write(data[i : i+1])
			s.NoError(err)
		}
		s.NoError(s.C2.Close())
	}()

	got, err := io.ReadAll(s.C1)
	s.NoError(err)
	s.Equal(data, got)
}
