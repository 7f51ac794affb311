package tz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvpbot/pkg/tz"
)

func TestLoad(t *testing.T) {
	loc, err := tz.Load("")
	require.NoError(t, err)
	assert.Equal(t, "EET", loc.String())

	_, offset := time.Date(2026, time.October, 15, 12, 0, 0, 0, loc).Zone()
	assert.Equal(t, 3*60*60, offset)

	loc, err = tz.Load("Europe/Moscow")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())

	_, err = tz.Load("Mars/Olympus")
	assert.Error(t, err)
}
