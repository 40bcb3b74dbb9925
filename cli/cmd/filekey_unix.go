//go:build unix

package cmd

import (
	"os"

	"golang.org/x/sys/unix"
)

func pathKey(path string) (fileKey, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}

func fdKey(f *os.File) (fileKey, bool) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}
