// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-autosuspend/autosuspend"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

const (
	dbusServiceName = "org.deepin.dde.AutoSuspend1"
	dbusPath        = "/org/deepin/dde/AutoSuspend1"
	dbusInterface   = dbusServiceName
)

type synchronizer interface {
	Synchronized() bool
}

// Manager exposes the selected backend on the system bus.
type Manager struct {
	backendName string
	ops         autosuspend.Ops
}

func newManager(backendName string, ops autosuspend.Ops) *Manager {
	return &Manager{
		backendName: backendName,
		ops:         ops,
	}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

func (m *Manager) Enable() *dbus.Error {
	err := m.ops.Enable()
	if err != nil {
		logger.Warningf("enable autosuspend failed: %v (%d)", err, autosuspend.Code(err))
	}
	return dbusutil.ToError(err)
}

func (m *Manager) Disable() *dbus.Error {
	err := m.ops.Disable()
	if err != nil {
		logger.Warningf("disable autosuspend failed: %v (%d)", err, autosuspend.Code(err))
	}
	return dbusutil.ToError(err)
}

func (m *Manager) ForceSuspend(timeoutMs int32) *dbus.Error {
	return dbusutil.ToError(m.ops.ForceSuspend(int(timeoutMs)))
}

// GetBackend returns the name of the backend in use and whether its
// requests wait for the display to follow.
func (m *Manager) GetBackend() (name string, synchronized bool, busErr *dbus.Error) {
	if s, ok := m.ops.(synchronizer); ok {
		synchronized = s.Synchronized()
	}
	return m.backendName, synchronized, nil
}

func (m *Manager) GetExportedMethods() dbusutil.ExportedMethods {
	return dbusutil.ExportedMethods{
		{
			Name: "Enable",
			Fn:   m.Enable,
		},
		{
			Name: "Disable",
			Fn:   m.Disable,
		},
		{
			Name:   "ForceSuspend",
			Fn:     m.ForceSuspend,
			InArgs: []string{"timeoutMs"},
		},
		{
			Name:    "GetBackend",
			Fn:      m.GetBackend,
			OutArgs: []string{"name", "synchronized"},
		},
	}
}
