package info

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckVersion(), "test binaries skip the check")

	full := FullVersion()
	assert.True(t, strings.HasPrefix(full, GetInfo().Name+" "), "full version should start with the name")
	assert.Contains(t, full, "Licensed under the")
	assert.True(t, strings.HasPrefix(Version(), version))
}
