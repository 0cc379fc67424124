//go:build linux

package static

import (
	"os"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// openInRoot walks unsafePath one component at a time from an open handle
// on root, so a component swapped for a symlink mid-lookup cannot lead
// outside it.
func openInRoot(root, unsafePath string) (*os.File, error) {
	handle, err := securejoin.OpenInRoot(root, unsafePath)
	if err != nil {
		return nil, err
	}
	defer handle.Close()
	// OpenInRoot hands back an O_PATH descriptor; reopen it for reading.
	return securejoin.Reopen(handle, os.O_RDONLY)
}
