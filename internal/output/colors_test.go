package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorSchemes(t *testing.T) {
	for name, scheme := range map[string]*ColorScheme{
		"default": DefaultColorScheme(),
		"none":    NoColorScheme(),
		"forced":  ForceColorScheme(),
	} {
		t.Run(name, func(t *testing.T) {
			for _, c := range scheme.all() {
				assert.NotNil(t, c)
			}
		})
	}
}

func TestNoColorScheme_PlainText(t *testing.T) {
	scheme := NoColorScheme()
	assert.Equal(t, "GET", scheme.Method.Sprint("GET"))
	assert.Equal(t, "200 OK", scheme.Status(200).Sprint("200 OK"))
}

func TestForceColorScheme_Escapes(t *testing.T) {
	scheme := ForceColorScheme()
	assert.Contains(t, scheme.Method.Sprint("GET"), "\x1b[")
}

func TestColorScheme_Status(t *testing.T) {
	s := DefaultColorScheme()
	tests := []struct {
		code int
		want interface{}
	}{
		{100, s.StatusWarn},
		{200, s.StatusOK},
		{204, s.StatusOK},
		{301, s.StatusWarn},
		{404, s.StatusError},
		{500, s.StatusError},
		{0, s.StatusError},
	}
	for _, tt := range tests {
		assert.Same(t, tt.want, s.Status(tt.code), "code %d", tt.code)
	}
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "✓", SuccessIcon(true))
	assert.Equal(t, "✗", ErrorIcon(true))
	assert.Contains(t, SuccessIcon(false), "✓")
	assert.Contains(t, ErrorIcon(false), "✗")
}
