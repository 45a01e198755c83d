//go:build unix

package render

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUmask(t *testing.T, mask int) {
	t.Helper()
	old := syscall.Umask(mask)
	t.Cleanup(func() { syscall.Umask(old) })
}

func TestArtifacts_WorldReadable(t *testing.T) {
	withUmask(t, 0o022)
	dir := t.TempDir()

	figPath := filepath.Join(dir, "finite_size_scaling.png")
	require.NoError(t, SaveFigure(figPath, testFigure(t), smallOptions()))

	gifPath := filepath.Join(dir, "domain_growth.gif")
	require.NoError(t, NewAnimator(DefaultAnimationOptions(), nil).Save(gifPath, threeFrames(t)))

	aviOpts := DefaultAnimationOptions()
	aviOpts.Format = FormatAVI
	aviPath := filepath.Join(dir, "domain_growth.avi")
	require.NoError(t, NewAnimator(aviOpts, nil).Save(aviPath, threeFrames(t)))

	for _, path := range []string{figPath, gifPath, aviPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm(), filepath.Base(path))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no pending or index files left behind")
}
