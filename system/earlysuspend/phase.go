// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

// Phase is the display power state last reported by the display driver.
type Phase int

const (
	PhaseOn Phase = iota
	PhaseMem
)

// String returns the token written to the power state file for this phase.
func (p Phase) String() string {
	switch p {
	case PhaseOn:
		return "on"
	case PhaseMem:
		return "mem"
	default:
		return "unknown"
	}
}
