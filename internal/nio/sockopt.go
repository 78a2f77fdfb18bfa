package nio

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// recvBufSize requests a larger kernel receive buffer ahead of fragmented
// Source-engine reassembly, where up to 35 datagrams for one sub-query can
// arrive back to back.
const recvBufSize = 1 << 20 // 1 MiB

func controlSetRecvBuf(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, recvBufSize)
	})
	if err != nil {
		return err
	}
	return sockErr
}
