// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/linuxdeepin/dde-autosuspend/system/earlysuspend"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "/etc/deepin/dde-autosuspend.yaml"

type Config struct {
	// Backends lists backend names in order of preference, empty means
	// every registered backend.
	Backends []string `yaml:"backends"`
	LogLevel string   `yaml:"log_level"`

	EarlySuspend earlysuspend.Config `yaml:"earlysuspend"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		EarlySuspend: earlysuspend.DefaultConfig(),
	}
}

// loadConfig reads the yaml file at path on top of the defaults. A missing
// file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("config %s not found, use defaults", path)
			return cfg, nil
		}
		return nil, err
	}

	err = yaml.Unmarshal(content, cfg)
	if err != nil {
		return nil, xerrors.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

type configWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	quit     chan struct{}
}

// newConfigWatcher watches the directory holding path, so the file may be
// replaced or created after start.
func newConfigWatcher(path string, onChange func(*Config)) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	cw := &configWatcher{
		path:     filepath.Clean(path),
		watcher:  watcher,
		onChange: onChange,
		quit:     make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

func (cw *configWatcher) loop() {
	var timer <-chan time.Time
	for {
		select {
		case <-cw.quit:
			return
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warning("config watcher error:", err)
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config event:", ev)
			// editors write in bursts
			timer = time.After(100 * time.Millisecond)
		case <-timer:
			timer = nil
			cfg, err := loadConfig(cw.path)
			if err != nil {
				logger.Warning("failed to reload config:", err)
				continue
			}
			cw.onChange(cfg)
		}
	}
}

func (cw *configWatcher) close() error {
	close(cw.quit)
	return cw.watcher.Close()
}
