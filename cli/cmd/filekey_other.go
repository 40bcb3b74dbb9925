//go:build !unix

package cmd

import "os"

// Without device and inode numbers, files compare by resolved path.
func pathKey(path string) (fileKey, bool) { return fileKey{path: path}, true }

func fdKey(*os.File) (fileKey, bool) { return fileKey{}, false }
