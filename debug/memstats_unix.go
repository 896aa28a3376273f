//go:build unix

package debug

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// processRSS returns the peak resident set size of the current process.
func processRSS() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	// Linux and the BSDs report kilobytes; Darwin reports bytes.
	if runtime.GOOS != "darwin" && runtime.GOOS != "ios" {
		rss *= 1024
	}
	return rss, nil
}
