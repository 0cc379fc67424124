//go:build !linux

package static

import (
	"os"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// openInRoot resolves unsafePath with symlinks scoped to root and opens
// the result. Without openat2 there is a window between resolving and
// opening; Linux builds use the handle-based walk instead.
func openInRoot(root, unsafePath string) (*os.File, error) {
	p, err := securejoin.SecureJoin(root, unsafePath)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}
