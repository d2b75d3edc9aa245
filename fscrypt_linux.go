//go:build linux

package hoard

import (
	"os"

	"golang.org/x/sys/unix"
)

// fsEncryptFlag is FS_ENCRYPT_FL from linux/fs.h: the inode is protected by
// fscrypt.
const fsEncryptFlag = 0x00000800

// fileEncrypted reports whether the filesystem marks f as natively
// encrypted. Filesystems without inode flags report false.
func fileEncrypted(f *os.File) bool {
	conn, err := f.SyscallConn()
	if err != nil {
		return false
	}
	var flags int
	var ioctlErr error
	if err := conn.Control(func(fd uintptr) {
		flags, ioctlErr = unix.IoctlGetInt(int(fd), unix.FS_IOC_GETFLAGS)
	}); err != nil || ioctlErr != nil {
		return false
	}
	return flags&fsEncryptFlag != 0
}
