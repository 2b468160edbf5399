package keypage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_argsFingerprint(t *testing.T) {
	type args struct {
		Role   string
		MinAge int
		// TraceID does not affect the result set and must not invalidate
		// cursors when it changes between requests.
		TraceID string `hash:"ignore"`
	}

	first, err := argsFingerprint(args{Role: "admin", MinAge: 18, TraceID: "t-1"})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	same, err := argsFingerprint(args{Role: "admin", MinAge: 18, TraceID: "t-2"})
	require.NoError(t, err)
	assert.Equal(t, first, same, "non-semantic fields must not change the fingerprint")

	other, err := argsFingerprint(args{Role: "user", MinAge: 18})
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "semantic fields must change the fingerprint")
}
