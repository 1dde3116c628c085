package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Architecture)
	assert.Equal(t, APIVersion, info.APIVersion)
}

func TestGetVersionString(t *testing.T) {
	assert.Contains(t, GetVersionString(), "Log Report Automation")
	assert.Contains(t, GetVersionString(), Version)
}

func TestGetFullVersionString(t *testing.T) {
	full := GetFullVersionString()

	assert.Contains(t, full, Version)
	assert.Contains(t, full, runtime.Version())
}

func TestStability(t *testing.T) {
	assert.True(t, IsStable())
	assert.False(t, IsPrerelease())
}
