package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/saaskit-dev/upshift/pkg/utils"
)

func TestDoubleQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple identifier",
			input:    "app",
			expected: `"app"`,
		},
		{
			name:     "identifier with spaces",
			input:    "my db",
			expected: `"my db"`,
		},
		{
			name:     "embedded quote is doubled",
			input:    `we"ird`,
			expected: `"we""ird"`,
		},
		{
			name:     "dot stays inside one identifier",
			input:    "tenant.app",
			expected: `"tenant.app"`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: `""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.DoubleQuoteIdentifier(tt.input))
		})
	}
}

func TestBacktickIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple identifier",
			input:    "app",
			expected: "`app`",
		},
		{
			name:     "identifier with spaces",
			input:    "my db",
			expected: "`my db`",
		},
		{
			name:     "embedded backtick is doubled",
			input:    "we`ird",
			expected: "`we``ird`",
		},
		{
			name:     "dot stays inside one identifier",
			input:    "tenant.app",
			expected: "`tenant.app`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.BacktickIdentifier(tt.input))
		})
	}
}

func TestPtr(t *testing.T) {
	s := utils.Ptr("hello")
	require.NotNil(t, s)
	require.Equal(t, "hello", *s)

	n := utils.Ptr(42)
	require.Equal(t, 42, *n)
}
