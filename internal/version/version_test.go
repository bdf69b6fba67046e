package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	defer func(v, b, c string) { Version, BuildTime, GitCommit = v, b, c }(Version, BuildTime, GitCommit)

	assert.Equal(t, "0.1.0 (unknown, unknown)", String())

	Version, BuildTime, GitCommit = "1.2.3", "today", "3f2a9c1d8e"
	assert.Equal(t, "1.2.3 (3f2a9c1, today)", String())
}
