// ABOUTME: WSL environment detection
// ABOUTME: Checks /proc/version for Microsoft kernel markers

package backend

import (
	"os"
	"strings"
	"sync"
)

var wslOnce struct {
	sync.Once
	flag bool
}

// isWSL reports whether the process runs inside a Windows Subsystem for
// Linux environment. The result is cached for the process lifetime.
func isWSL() bool {
	wslOnce.Do(func() {
		version, err := os.ReadFile("/proc/version")
		if err != nil {
			return
		}
		lower := strings.ToLower(string(version))
		wslOnce.flag = strings.Contains(lower, "microsoft") || strings.Contains(lower, "wsl")
	})
	return wslOnce.flag
}
