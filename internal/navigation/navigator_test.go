package navigation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginURL(t *testing.T) {
	tests := []struct {
		name      string
		loginPath string
		returnTo  string
		expected  string
	}{
		{
			name:      "simple path",
			loginPath: "/login",
			returnTo:  "/employees",
			expected:  "/login?redirect=%2Femployees",
		},
		{
			name:      "path with query is escaped",
			loginPath: "/login",
			returnTo:  "/employees?page=2&q=a b",
			expected:  "/login?redirect=%2Femployees%3Fpage%3D2%26q%3Da+b",
		},
		{
			name:      "empty login path falls back to default",
			loginPath: "",
			returnTo:  "/",
			expected:  "/login?redirect=%2F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LoginURL(tt.loginPath, tt.returnTo))
		})
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Path: "/payroll"}
	assert.Equal(t, "/payroll", r.CurrentPath())
	assert.Empty(t, r.Targets())

	r.Navigate("/login?redirect=%2Fpayroll")
	assert.Equal(t, []string{"/login?redirect=%2Fpayroll"}, r.Targets())

	assert.Equal(t, "/", (&Recorder{}).CurrentPath())
}

func TestTerminal(t *testing.T) {
	var buf bytes.Buffer
	term := Terminal{Out: &buf, Path: "/cli"}

	term.Navigate("/login?redirect=%2Fcli")
	assert.Equal(t, "/cli", term.CurrentPath())
	assert.Contains(t, buf.String(), "/login?redirect=%2Fcli")
}
