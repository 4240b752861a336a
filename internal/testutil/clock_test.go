package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMockClock_StartsAtFixedTime(t *testing.T) {
	c := NewMockClock()
	assert.True(t, c.Now().Equal(FixedTime))
}

func TestNewMockClock_DoesNotAdvanceOnItsOwn(t *testing.T) {
	c := NewMockClock()
	first := c.Now()
	time.Sleep(5 * time.Millisecond)
	assert.True(t, c.Now().Equal(first))
}

func TestNewMockClock_Add(t *testing.T) {
	c := NewMockClock()
	c.Add(90 * time.Second)
	assert.True(t, c.Now().Equal(FixedTime.Add(90*time.Second)))
}

func TestNewMockClockAt(t *testing.T) {
	at := time.Date(2001, time.February, 3, 4, 5, 6, 0, time.UTC)
	c := NewMockClockAt(at)
	assert.True(t, c.Now().Equal(at))
}

func TestNewMockClock_Independent(t *testing.T) {
	a := NewMockClock()
	b := NewMockClock()

	a.Add(time.Hour)

	assert.True(t, b.Now().Equal(FixedTime), "advancing one mock must not move another")
}
