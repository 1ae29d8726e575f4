// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package autosuspend

// WakeupCallback is called by a backend after a suspend attempt, success
// reports whether the system actually went to sleep.
type WakeupCallback func(success bool)

// Ops is the contract every suspend backend offers to the controller.
type Ops interface {
	// Enable requests the low-power state.
	Enable() error
	// Disable requests the full-power state.
	Disable() error
	ForceSuspend(timeoutMs int) error
	SetWakeupCallback(cb WakeupCallback)
}
