package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvGetters(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_LIST", " http://a.test, ,http://b.test ")
	t.Setenv("TEST_EMPTY", "")

	assert.Equal(t, 42, GetEnvAsInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("TEST_BAD_INT", 1))
	assert.Equal(t, int64(42), GetEnvAsInt64("TEST_INT", 1))
	assert.Equal(t, uint64(42), GetEnvAsUint64("TEST_INT", 1))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("TEST_DURATION", time.Second))
	assert.True(t, GetEnvAsBool("TEST_BOOL", false))
	assert.Equal(t, "fallback", GetEnvAsString("TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetEnvAsString("TEST_UNSET_VARIABLE", "fallback"))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, GetEnvAsStringSlice("TEST_LIST", nil))
	assert.Equal(t, []string{"*"}, GetEnvAsStringSlice("TEST_EMPTY", []string{"*"}))
}
