// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

import (
	"os"

	"golang.org/x/sys/unix"
)

// powerState holds the open handle of the system power state file. It is
// opened once and kept for the lifetime of the process.
type powerState struct {
	path string
	fd   int
}

func openPowerState(path string) (*powerState, error) {
	var fd int
	err := retryOnEINTR(func() (err error) {
		fd, err = unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
		return
	})
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return &powerState{path: path, fd: fd}, nil
}

// request asks the kernel to enter the given state. Writing "mem" may not
// return until the system resumes.
func (ps *powerState) request(phase Phase) error {
	token := []byte(phase.String())
	err := retryOnEINTR(func() error {
		_, err := unix.Write(ps.fd, token)
		return err
	})
	if err != nil {
		return &os.PathError{Op: "write", Path: ps.path, Err: err}
	}
	return nil
}

func (ps *powerState) close() error {
	return unix.Close(ps.fd)
}

func retryOnEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}
