// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

import (
	"sync"

	"github.com/linuxdeepin/dde-autosuspend/autosuspend"
	"github.com/linuxdeepin/dde-autosuspend/loader"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("daemon/system/earlysuspend")

var _daemon = NewDaemon(logger)

func init() {
	loader.Register(_daemon)
}

type Daemon struct {
	*loader.ModuleBase

	mu      sync.Mutex
	config  Config
	backend *Backend
}

func NewDaemon(logger *log.Logger) *Daemon {
	daemon := &Daemon{
		config: DefaultConfig(),
	}
	daemon.ModuleBase = loader.NewModuleBase(backendName, daemon, logger)
	return daemon
}

// Configure sets the config used when the loader initializes the backend.
// It has no effect once the backend exists.
func Configure(cfg Config) {
	_daemon.setConfig(cfg)
}

func (d *Daemon) setConfig(cfg Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.backend != nil {
		logger.Debug("backend already initialized, config ignored")
		return
	}
	d.config = cfg
}

func (d *Daemon) Start() (autosuspend.Ops, error) {
	d.mu.Lock()
	cfg := d.config
	d.mu.Unlock()

	backend, err := Init(cfg)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.backend = backend
	d.mu.Unlock()
	return backend, nil
}
