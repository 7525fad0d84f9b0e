package run

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"sync/atomic"
	"testing"
)

func TestConcurrent(t *testing.T) {
	var calls int32
	failure := errors.New("failure")
	err := Concurrent(
		func() error { atomic.AddInt32(&calls, 1); return nil },
		func() error { atomic.AddInt32(&calls, 1); return failure },
		func() error { atomic.AddInt32(&calls, 1); return nil },
	)
	assert.Equal(t, failure, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Nil(t, Concurrent())
}
