// Package pty exposes the emulator as a pseudo-terminal symlinked to a
// chosen path, so serial-port clients can open it like a real device.
package pty

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
)

var ErrUnsupported = errors.New("pty: pseudo-terminals are not supported on this platform")

type PTY struct {
	master    *os.File
	slave     *os.File
	slavePath string
	target    string
}

// Master is the emulator's end of the terminal.
func (p *PTY) Master() *os.File {
	return p.master
}

// SlavePath is the /dev/pts device clients open through the symlink.
func (p *PTY) SlavePath() string {
	return p.slavePath
}

// Close closes both ends and removes the symlink.
func (p *PTY) Close() error {
	var errs []error
	if err := os.Remove(p.target); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}
	if err := p.slave.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := p.master.Close(); err != nil {
		errs = append(errs, err)
	}
	log.Debug().Str("target", p.target).Msg("pty closed")
	return errors.Join(errs...)
}

// link replaces whatever is at target with a symlink to the slave.
func (p *PTY) link(target string) error {
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Symlink(p.slavePath, target); err != nil {
		return err
	}
	p.target = target
	return nil
}
