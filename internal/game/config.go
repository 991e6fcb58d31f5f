package game

import "runtime"

var platform = runtime.GOOS

// SetPlatform overrides the detected platform name (logged at start up).
func SetPlatform(p string) {
	if p != "" {
		platform = p
	}
}

func Platform() string { return platform }
