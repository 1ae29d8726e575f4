// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"os"
	"testing"

	"github.com/linuxdeepin/dde-autosuspend/autosuspend"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

type fakeOps struct {
	enableErr  error
	disableErr error
	calls      []string
	timeouts   []int
	synced     bool
}

func (o *fakeOps) Enable() error {
	o.calls = append(o.calls, "enable")
	return o.enableErr
}

func (o *fakeOps) Disable() error {
	o.calls = append(o.calls, "disable")
	return o.disableErr
}

func (o *fakeOps) ForceSuspend(timeoutMs int) error {
	o.calls = append(o.calls, "force")
	o.timeouts = append(o.timeouts, timeoutMs)
	return nil
}

func (o *fakeOps) SetWakeupCallback(cb autosuspend.WakeupCallback) {}

func (o *fakeOps) Synchronized() bool {
	return o.synced
}

func Test_Manager(t *testing.T) {
	ops := &fakeOps{synced: true}
	m := newManager("earlysuspend", ops)

	assert.Equal(t, "org.deepin.dde.AutoSuspend1", m.GetInterfaceName())
	assert.Nil(t, m.Enable())
	assert.Nil(t, m.Disable())
	assert.Nil(t, m.ForceSuspend(-1))
	assert.Equal(t, []string{"enable", "disable", "force"}, ops.calls)
	assert.Equal(t, []int{-1}, ops.timeouts)

	name, synced, busErr := m.GetBackend()
	assert.Nil(t, busErr)
	assert.Equal(t, "earlysuspend", name)
	assert.True(t, synced)
}

func Test_ManagerErrors(t *testing.T) {
	ops := &fakeOps{
		enableErr:  &os.PathError{Op: "write", Path: "/sys/power/state", Err: unix.EBUSY},
		disableErr: &os.PathError{Op: "write", Path: "/sys/power/state", Err: unix.EINVAL},
	}
	m := newManager("earlysuspend", ops)

	busErr := m.Enable()
	if assert.NotNil(t, busErr) {
		assert.Contains(t, busErr.Error(), "device or resource busy")
	}
	busErr = m.Disable()
	if assert.NotNil(t, busErr) {
		assert.Contains(t, busErr.Error(), "invalid argument")
	}
}

func Test_ManagerNotSynchronizer(t *testing.T) {
	var ops autosuspend.Ops = &struct{ autosuspend.Ops }{&fakeOps{}}
	m := newManager("other", ops)

	name, synced, busErr := m.GetBackend()
	assert.Nil(t, busErr)
	assert.Equal(t, "other", name)
	assert.False(t, synced)
}

func Test_ManagerExportedMethods(t *testing.T) {
	m := newManager("earlysuspend", &fakeOps{})
	methods := m.GetExportedMethods()

	var names []string
	for _, method := range methods {
		names = append(names, method.Name)
	}
	assert.Equal(t, []string{"Enable", "Disable", "ForceSuspend", "GetBackend"}, names)
}
