package health

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"snip/internal/engine"
)

// Result reports the outcome of a single health check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable. This is the capability probe the engine's private
// namespace depends on.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckAsset verifies one engine asset resolves to an executable file. Both
// assets must be reachable before the session can load.
func CheckAsset(name, asset string) Result {
	resolved, err := engine.ResolveAsset(asset)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", asset, err)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckSession reports the session's loaded flag. An unloaded session is not
// a failure; loading is lazy and happens on the first export.
func CheckSession(session *engine.Session) Result {
	const name = "Engine session"
	if session == nil {
		return Result{Name: name, Passed: true, Detail: "not created"}
	}
	if session.IsLoaded() {
		return Result{Name: name, Passed: true, Detail: "ready"}
	}
	return Result{Name: name, Passed: true, Detail: "not loaded (loads on first export)"}
}
