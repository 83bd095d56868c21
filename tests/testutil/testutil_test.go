package testutil

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("creator"), NewTestUUID("creator"))
	assert.NotEqual(t, NewTestUUID("creator"), NewTestUUID("fan"))
}

func TestTestEmail(t *testing.T) {
	a, b := TestEmail("fan"), TestEmail("fan")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "fan-"))
	assert.True(t, strings.HasSuffix(a, "@audiozoom.test"))
}

func TestContextWithTimeout(t *testing.T) {
	ctx := ContextWithTimeout(t, time.Minute)
	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, time.Second)
}

func TestWaitForCondition(t *testing.T) {
	var n atomic.Int32
	go func() {
		time.Sleep(20 * time.Millisecond)
		n.Store(1)
	}()
	assert.True(t, WaitForCondition(t, func() bool { return n.Load() == 1 }, time.Second, 5*time.Millisecond))
	assert.False(t, WaitForCondition(t, func() bool { return false }, 20*time.Millisecond, 5*time.Millisecond))
}

func TestRequireEventually(t *testing.T) {
	var n atomic.Int32
	go n.Store(1)
	RequireEventually(t, func() bool { return n.Load() == 1 }, time.Second)
}

func TestAssertNever(t *testing.T) {
	AssertNever(t, func() bool { return false }, 20*time.Millisecond, 5*time.Millisecond)
}
