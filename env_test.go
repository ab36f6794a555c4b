package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubEnv map[string]string

func (s stubEnv) Getenv(key string) string { return s[key] }

func TestParseFloat32DitherDisablingSpellings(t *testing.T) {
	for _, v := range []string{"", "0", "false", "off", "no", "OFF", "  no  "} {
		assert.False(t, parseFloat32Dither(v), "expected %q to disable", v)
	}
}

func TestParseFloat32DitherEnablingSpellings(t *testing.T) {
	for _, v := range []string{"1", "true", "on", "yes", "auto", "kmeans"} {
		assert.True(t, parseFloat32Dither(v), "expected %q to enable", v)
	}
}

func TestFloat32DitherCacheMemoisesFirstRead(t *testing.T) {
	env := stubEnv{"SIXEL_FLOAT32_DITHER": "1"}
	c := newFloat32DitherCache(env)
	assert.True(t, c.Enabled())

	env["SIXEL_FLOAT32_DITHER"] = "0"
	assert.True(t, c.Enabled(), "cache must not re-read after the first call")
}

func TestFloat32DitherCacheDefaultsToOSEnvOnNil(t *testing.T) {
	c := newFloat32DitherCache(nil)
	assert.NotPanics(t, func() { c.Enabled() })
}
