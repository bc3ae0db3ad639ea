package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduledAt(t *testing.T) {
	r := Reservation{Date: "2099-01-01", Time: "19:00"}
	at, err := r.ScheduledAt()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2099, 1, 1, 19, 0, 0, 0, time.Local), at)

	// seconds are accepted too, MySQL TIME columns come back that way
	r.Time = "19:00:30"
	at, err = r.ScheduledAt()
	assert.NoError(t, err)
	assert.Equal(t, 30, at.Second())

	r.Time = "late evening"
	_, err = r.ScheduledAt()
	assert.Error(t, err)
}
