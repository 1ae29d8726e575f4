// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"sync"

	"github.com/linuxdeepin/dde-autosuspend/autosuspend"
	"github.com/linuxdeepin/go-lib/log"
)

// Module is one selectable suspend backend.
type Module interface {
	Name() string
	// Init constructs the backend. Only the first call does any work, later
	// calls return the same result.
	Init() (autosuspend.Ops, error)
	IsInitialized() bool
	SetLogLevel(log.Priority)
	LogLevel() log.Priority
	ModuleImpl
}

type Modules []Module

type ModuleImpl interface {
	Start() (autosuspend.Ops, error) // please keep Start sync, err log will be done by loader
}

type ModuleBase struct {
	impl ModuleImpl
	name string
	log  *log.Logger

	once        sync.Once
	mu          sync.Mutex
	initialized bool
	ops         autosuspend.Ops
	err         error
}

func NewModuleBase(name string, impl ModuleImpl, logger *log.Logger) *ModuleBase {
	return &ModuleBase{
		name: name,
		impl: impl,
		log:  logger,
	}
}

func (d *ModuleBase) Init() (autosuspend.Ops, error) {
	d.once.Do(func() {
		var ops autosuspend.Ops
		var err error
		if d.impl != nil {
			ops, err = d.impl.Start()
		}
		d.mu.Lock()
		d.ops, d.err = ops, err
		d.initialized = true
		d.mu.Unlock()
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ops, d.err
}

func (d *ModuleBase) IsInitialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

func (d *ModuleBase) Name() string {
	return d.name
}

func (d *ModuleBase) SetLogLevel(pri log.Priority) {
	d.log.SetLogLevel(pri)
}

func (d *ModuleBase) LogLevel() log.Priority {
	return d.log.GetLogLevel()
}
