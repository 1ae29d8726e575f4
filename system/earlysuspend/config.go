// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

const (
	sysPowerState  = "/sys/power/state"
	waitForFbSleep = "/sys/power/wait_for_fb_sleep"
	waitForFbWake  = "/sys/power/wait_for_fb_wake"
)

type Config struct {
	PowerStatePath  string `yaml:"power_state"`
	SleepNotifyPath string `yaml:"wait_for_fb_sleep"`
	WakeNotifyPath  string `yaml:"wait_for_fb_wake"`

	// FailFastOnWatcherExit makes Enable and Disable return ErrWatcherExited
	// once the display watcher has died, instead of waiting forever.
	FailFastOnWatcherExit bool `yaml:"fail_fast_on_watcher_exit"`
}

func DefaultConfig() Config {
	return Config{
		PowerStatePath:  sysPowerState,
		SleepNotifyPath: waitForFbSleep,
		WakeNotifyPath:  waitForFbWake,
	}
}

// withDefaults fills empty paths, so a partial config section keeps working.
func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.PowerStatePath == "" {
		cfg.PowerStatePath = def.PowerStatePath
	}
	if cfg.SleepNotifyPath == "" {
		cfg.SleepNotifyPath = def.SleepNotifyPath
	}
	if cfg.WakeNotifyPath == "" {
		cfg.WakeNotifyPath = def.WakeNotifyPath
	}
	return cfg
}
