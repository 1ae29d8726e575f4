// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package autosuspend

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// ErrUnavailable is matched by every error a backend returns when it cannot
// be used on this machine.
var ErrUnavailable = xerrors.New("autosuspend backend unavailable")

type UnavailableError struct {
	Backend string
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Backend, ErrUnavailable)
	}
	return fmt.Sprintf("%s: %v: %v", e.Backend, ErrUnavailable, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// Code converts an error returned by Ops into the integer result used by the
// C style controller interface: 0 on success, a negative errno otherwise.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var errno unix.Errno
	if errors.As(err, &errno) && errno != 0 {
		return -int(errno)
	}
	return -int(unix.EIO)
}
