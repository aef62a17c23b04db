package pty

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// Open allocates a pseudo-terminal, switches it to raw mode and symlinks the
// slave end to target. The slave stays open for the lifetime of the PTY so the
// master does not see a hangup when clients disconnect.
func Open(target string) (*PTY, error) {
	masterFd, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/ptmx: %w", err)
	}
	master := os.NewFile(uintptr(masterFd), "/dev/ptmx")

	if err := unix.IoctlSetPointerInt(masterFd, unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, fmt.Errorf("unlockpt: %w", err)
	}
	n, err := unix.IoctlGetUint32(masterFd, unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("ptsname: %w", err)
	}
	slavePath := fmt.Sprintf("/dev/pts/%d", n)

	slaveFd, err := unix.Open(slavePath, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("open %s: %w", slavePath, err)
	}
	slave := os.NewFile(uintptr(slaveFd), slavePath)

	if err := makeRaw(slaveFd); err != nil {
		slave.Close()
		master.Close()
		return nil, fmt.Errorf("set raw mode on %s: %w", slavePath, err)
	}

	p := &PTY{master: master, slave: slave, slavePath: slavePath}
	if err := p.link(target); err != nil {
		slave.Close()
		master.Close()
		return nil, fmt.Errorf("symlink %s -> %s: %w", target, slavePath, err)
	}

	log.Info().Str("target", target).Str("slave", slavePath).Msg("pty opened")
	return p, nil
}

// makeRaw is cfmakeraw(3): no echo, no line discipline, 8-bit bytes.
func makeRaw(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}
