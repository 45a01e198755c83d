package render

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
)

// artifactPerm is the mode of every published figure and animation, before
// the umask.
const artifactPerm os.FileMode = 0o644

// writeAtomic streams into a pending file beside path and renames it over
// path once write returns nil. On failure the pending file is removed.
func writeAtomic(path string, write func(io.Writer) error) error {
	return withPendingFile(path, func(pf *renameio.PendingFile) error {
		return write(pf)
	})
}

// withPendingFile hands fn an open pending file in the destination
// directory. fn may rewrite the file by name; the rename happens after fn
// returns nil.
func withPendingFile(path string, fn func(pf *renameio.PendingFile) error) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(artifactPerm))
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer pf.Cleanup()

	if err := fn(pf); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
