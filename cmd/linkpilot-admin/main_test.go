package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsLikelyRemoteHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"", false},
		{"localhost", false},
		{"LOCALHOST", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"db.local", false},
		{"127.0.0.53", false},
		{"10.0.4.17", true},
		{"db.prod.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			require.Equal(t, tt.want, isLikelyRemoteHost(tt.host))
		})
	}
}

func TestDBResetConfirmRemoteHostForcesPrompt(t *testing.T) {
	opts := dbResetConfirmOptions{yes: true, remoteHost: "db.prod.example.com"}
	require.False(t, opts.IsYes())
	require.Contains(t, opts.GetWarning(), "db.prod.example.com")

	local := dbResetConfirmOptions{yes: true}
	require.True(t, local.IsYes())
}

func TestQuoteIdentifierEscapesQuotes(t *testing.T) {
	require.Equal(t, `"linkpilot"`, quoteIdentifier("linkpilot"))
	require.Equal(t, `"we""ird"`, quoteIdentifier(`we"ird`))
}
