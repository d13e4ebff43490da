//go:build !unix && !windows

package fileutil

func isLocked(error) bool { return false }
