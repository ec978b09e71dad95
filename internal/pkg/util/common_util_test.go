package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-20")
	require.NoError(t, err)
	require.Equal(t, 2026, d.Year())
	require.Equal(t, time.August, d.Month())
	require.Equal(t, 20, d.Day())

	_, err = ParseDate("20/08/2026")
	require.Error(t, err)
}
