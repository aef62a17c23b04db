//go:build !linux

package pty

func Open(target string) (*PTY, error) {
	return nil, ErrUnsupported
}
