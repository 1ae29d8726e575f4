// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

import (
	"github.com/linuxdeepin/dde-autosuspend/autosuspend"
	"github.com/linuxdeepin/go-lib/utils"
)

const backendName = "earlysuspend"

// Backend drives /sys/power/state and, when the kernel offers the
// wait_for_fb_* files, waits for the display to follow each request.
type Backend struct {
	coord *coordinator
}

var _ autosuspend.Ops = (*Backend)(nil)

// Init opens the power state file and starts the display watcher when both
// notification files exist. It must be called at most once per process.
func Init(cfg Config) (*Backend, error) {
	return initBackend(cfg, newSysfsEvent)
}

func initBackend(cfg Config, newEvent func(path string) eventSource) (*Backend, error) {
	cfg = cfg.withDefaults()

	power, err := openPowerState(cfg.PowerStatePath)
	if err != nil {
		logger.Warningf("Error opening %s: %v", cfg.PowerStatePath, err)
		return nil, &autosuspend.UnavailableError{Backend: backendName, Err: err}
	}

	err = power.request(PhaseOn)
	if err != nil {
		logger.Warningf("Error writing 'on' to %s: %v", cfg.PowerStatePath, err)
		closeErr := power.close()
		if closeErr != nil {
			logger.Warning(closeErr)
		}
		return nil, &autosuspend.UnavailableError{Backend: backendName, Err: err}
	}

	logger.Info("Selected early suspend")

	b := &Backend{
		coord: newCoordinator(power, cfg.FailFastOnWatcherExit),
	}
	b.startWatcher(cfg, newEvent)
	return b, nil
}

func (b *Backend) startWatcher(cfg Config, newEvent func(path string) eventSource) {
	if !utils.IsFileExist(cfg.SleepNotifyPath) {
		logger.Debugf("%s not found, early suspend runs unsynchronized", cfg.SleepNotifyPath)
		return
	}
	if !utils.IsFileExist(cfg.WakeNotifyPath) {
		logger.Debugf("%s not found, early suspend runs unsynchronized", cfg.WakeNotifyPath)
		return
	}

	w := &watcher{
		sleep: newEvent(cfg.SleepNotifyPath),
		wake:  newEvent(cfg.WakeNotifyPath),
		coord: b.coord,
	}

	// line up with the driver before following it
	err := w.wake.Wait()
	if err != nil {
		logger.Warning("Failed reading wait_for_fb_wake:", err)
	}

	logger.Info("Starting early suspend unblocker")
	b.coord.syncEnabled = true
	go w.loop()
}

// Enable requests "mem" and waits until the display has gone to sleep.
func (b *Backend) Enable() error {
	logger.Debug("earlysuspend enable")
	err := b.coord.request(PhaseMem)
	if err != nil {
		return err
	}
	logger.Debug("earlysuspend enable done")
	return nil
}

// Disable requests "on" and waits until the display is awake.
func (b *Backend) Disable() error {
	logger.Debug("earlysuspend disable")
	err := b.coord.request(PhaseOn)
	if err != nil {
		return err
	}
	logger.Debug("earlysuspend disable done")
	return nil
}

// ForceSuspend is not supported by this backend and does nothing.
func (b *Backend) ForceSuspend(timeoutMs int) error {
	logger.Debug("force_suspend called with timeout:", timeoutMs)
	return nil
}

// SetWakeupCallback is accepted for interface compatibility, the callback
// is never called.
func (b *Backend) SetWakeupCallback(cb autosuspend.WakeupCallback) {}

func (b *Backend) Name() string {
	return backendName
}

// Synchronized reports whether Enable and Disable wait for the display.
func (b *Backend) Synchronized() bool {
	return b.coord.syncEnabled
}

// WatcherAlive reports whether the display watcher is still running. It is
// false when synchronization was never enabled.
func (b *Backend) WatcherAlive() bool {
	return b.coord.syncEnabled && !b.coord.isWatcherExited()
}

// Phase returns the display phase last reported by the watcher.
func (b *Backend) Phase() Phase {
	return b.coord.getPhase()
}
