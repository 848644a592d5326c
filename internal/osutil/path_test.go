package osutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/llamas")

	got, err := ExpandHome("~/.config/envrbw/envrbw.cfg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/llamas", ".config/envrbw/envrbw.cfg"), got)
}

func TestExpandHomeLeavesOtherPathsAlone(t *testing.T) {
	got, err := ExpandHome("/etc/envrbw.cfg")
	require.NoError(t, err)
	assert.Equal(t, "/etc/envrbw.cfg", got)
}

func TestExpandHomeRejectsOtherUsers(t *testing.T) {
	_, err := ExpandHome("~llamas/envrbw.cfg")
	assert.Error(t, err)
}

func TestNormalizeFilePathEmpty(t *testing.T) {
	got, err := NormalizeFilePath("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNormalizeFilePathExpandsEnv(t *testing.T) {
	t.Setenv("ENVRBW_TEST_DIR", "/opt/envrbw")

	got, err := NormalizeFilePath("$ENVRBW_TEST_DIR/envrbw.cfg")
	require.NoError(t, err)
	assert.Equal(t, "/opt/envrbw/envrbw.cfg", got)
}

func TestFileExists(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "osutil-test")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.True(t, FileExists(f.Name()))
	assert.False(t, FileExists(f.Name()+".missing"))
}
