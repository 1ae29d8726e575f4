// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

import (
	"io"
	"os"
)

// eventSource blocks in Wait until the event it stands for has happened.
type eventSource interface {
	Wait() error
}

// sysfsEvent is a kernel notification file whose read blocks until the
// display changes state.
type sysfsEvent struct {
	path string
}

func newSysfsEvent(path string) eventSource {
	return sysfsEvent{path: path}
}

func (ev sysfsEvent) Wait() error {
	f, err := os.Open(ev.path)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf [1]byte
	// an empty read still means the driver let us through
	_, err = f.Read(buf[:])
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}
