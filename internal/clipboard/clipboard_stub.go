//go:build !linux && !windows && !freebsd && !openbsd && !netbsd && !dragonfly && !(darwin && cgo)

package clipboard

import "fmt"

var newBackend = func() (backend, error) {
	return nil, fmt.Errorf("clipboard operations are not supported on this platform")
}
