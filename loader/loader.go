// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/linuxdeepin/dde-autosuspend/autosuspend"
	"github.com/linuxdeepin/go-lib/log"
)

type SelectFlag int

const (
	SelectFlagNone SelectFlag = 1 << iota
	SelectFlagIgnoreMissingModule
)

func (flags SelectFlag) HasFlag(flag SelectFlag) bool {
	return flags&flag != 0
}

const (
	ErrorMissingModule int = iota
	ErrorNoBackend
)

type SelectError struct {
	ModuleName string
	Code       int
	detail     string
}

func (e *SelectError) Error() string {
	switch e.Code {
	case ErrorMissingModule:
		return fmt.Sprintf("%s is missing", e.ModuleName)
	case ErrorNoBackend:
		return fmt.Sprintf("no usable autosuspend backend, tried: %s", e.detail)
	}
	panic("SelectError: Unknown Error, Should not be reached")
}

type Loader struct {
	modules Modules
	log     *log.Logger
	lock    sync.Mutex
}

func (l *Loader) SetLogLevel(pri log.Priority) {
	l.log.SetLogLevel(pri)

	l.lock.Lock()
	defer l.lock.Unlock()

	for _, module := range l.modules {
		module.SetLogLevel(pri)
	}
}

func (l *Loader) AddModule(m Module) {
	l.lock.Lock()
	defer l.lock.Unlock()
	name := m.Name()
	if l.getModule(name) != nil {
		l.log.Debug("Register", name, "is already registered")
		return
	}
	l.log.Debug("Register module:", name)
	l.modules = append(l.modules, m)
}

// List returns the modules in registration order.
func (l *Loader) List() []Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	modules := make([]Module, len(l.modules))
	copy(modules, l.modules)
	return modules
}

func (l *Loader) GetModule(name string) Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.getModule(name)
}

func (l *Loader) getModule(name string) Module {
	for _, m := range l.modules {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// Select initializes the named backends in order and returns the first one
// that is usable. An empty list means every registered module in
// registration order.
func (l *Loader) Select(names []string, flag SelectFlag) (Module, autosuspend.Ops, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	candidates := make(Modules, 0, len(l.modules))
	if len(names) == 0 {
		candidates = append(candidates, l.modules...)
	} else {
		for _, name := range names {
			module := l.getModule(name)
			if module == nil {
				if flag.HasFlag(SelectFlagIgnoreMissingModule) {
					l.log.Info("no such a module named", name)
					continue
				}
				return nil, nil, &SelectError{ModuleName: name, Code: ErrorMissingModule}
			}
			candidates = append(candidates, module)
		}
	}

	tried := make([]string, 0, len(candidates))
	for _, module := range candidates {
		name := module.Name()
		tried = append(tried, name)

		startTime := time.Now()
		ops, err := module.Init()
		duration := time.Since(startTime)
		if err != nil {
			if errors.Is(err, autosuspend.ErrUnavailable) {
				l.log.Infof("backend %s unavailable: %v, cost %s", name, err, duration)
			} else {
				l.log.Warningf("init backend %s failed: %v, cost %s", name, err, duration)
			}
			continue
		}
		if ops == nil {
			l.log.Warningf("backend %s returned no ops", name)
			continue
		}
		l.log.Infof("selected backend %s, cost %s", name, duration)
		return module, ops, nil
	}

	return nil, nil, &SelectError{Code: ErrorNoBackend, detail: strings.Join(tried, ",")}
}
