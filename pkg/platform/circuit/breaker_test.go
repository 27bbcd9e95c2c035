package circuit

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) TestOpensAfterConsecutiveFailures() {
	b := New("branding", WithFailureThreshold(3))

	s.False(b.RecordFailure())
	s.False(b.RecordFailure())
	s.True(b.RecordFailure(), "third consecutive failure opens the circuit")
	s.True(b.IsOpen())
}

func (s *BreakerSuite) TestSuccessResetsFailureStreak() {
	b := New("branding", WithFailureThreshold(3))

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	s.False(b.RecordFailure(), "streak restarts after a success")
	s.False(b.IsOpen())
}

func (s *BreakerSuite) TestClosesAfterConsecutiveSuccesses() {
	b := New("branding", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	s.True(b.IsOpen())

	s.False(b.RecordSuccess())
	s.True(b.RecordSuccess(), "second consecutive success closes the circuit")
	s.False(b.IsOpen())
}

func (s *BreakerSuite) TestFailureWhileOpenResetsSuccessStreak() {
	b := New("branding", WithFailureThreshold(1), WithSuccessThreshold(2))

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	s.False(b.RecordSuccess(), "success streak restarts after an open-state failure")
	s.True(b.IsOpen())
}

func (s *BreakerSuite) TestReset() {
	b := New("branding", WithFailureThreshold(1))
	b.RecordFailure()
	s.True(b.IsOpen())

	b.Reset()
	s.False(b.IsOpen())
}
