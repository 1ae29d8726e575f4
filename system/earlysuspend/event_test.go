// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func Test_sysfsEventFifo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wait_for_fb_sleep")
	require.NoError(t, unix.Mkfifo(path, 0600))

	ev := newSysfsEvent(path)
	done := goCall(ev.Wait)
	assertBlocked(t, done)

	go signalFifo(path)
	assert.NoError(t, assertReturned(t, done))
}

func Test_sysfsEventEmptyRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wait_for_fb_wake")
	require.NoError(t, os.WriteFile(path, nil, 0444))

	assert.NoError(t, newSysfsEvent(path).Wait())
}

func Test_sysfsEventMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wait_for_fb_wake")

	err := newSysfsEvent(path).Wait()
	assert.True(t, os.IsNotExist(err))
}

func Test_sysfsEventReadError(t *testing.T) {
	// reading a directory fails with EISDIR after a successful open
	err := newSysfsEvent(t.TempDir()).Wait()
	assert.Error(t, err)
}

func Test_Phase(t *testing.T) {
	assert.Equal(t, "on", PhaseOn.String())
	assert.Equal(t, "mem", PhaseMem.String())
	assert.Equal(t, "unknown", Phase(7).String())
}

func Test_powerStateRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ps, err := openPowerState(path)
	require.NoError(t, err)
	defer ps.close()

	require.NoError(t, ps.request(PhaseMem))
	require.NoError(t, ps.request(PhaseOn))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "memon", string(content))
}

func Test_powerStateReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file modes")
	}
	path := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.WriteFile(path, nil, 0444))

	_, err := openPowerState(path)
	var pathErr *os.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "open", pathErr.Op)
	assert.Equal(t, unix.EACCES, pathErr.Err)
}

func Test_retryOnEINTR(t *testing.T) {
	calls := 0
	err := retryOnEINTR(func() error {
		calls++
		if calls < 3 {
			return unix.EINTR
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retryOnEINTR(func() error {
		calls++
		return unix.EBUSY
	})
	assert.Equal(t, unix.EBUSY, err)
	assert.Equal(t, 1, calls)
}

func Test_ConfigDefaults(t *testing.T) {
	cfg := Config{WakeNotifyPath: "/tmp/wake"}.withDefaults()
	assert.Equal(t, "/sys/power/state", cfg.PowerStatePath)
	assert.Equal(t, "/sys/power/wait_for_fb_sleep", cfg.SleepNotifyPath)
	assert.Equal(t, "/tmp/wake", cfg.WakeNotifyPath)
	assert.False(t, cfg.FailFastOnWatcherExit)
	assert.Equal(t, DefaultConfig(), Config{}.withDefaults())
}

func Test_DaemonStart(t *testing.T) {
	env := newTestEnv(t, false)
	d := NewDaemon(logger)
	d.setConfig(env.cfg)

	ops, err := d.Init()
	require.NoError(t, err)
	b, ok := ops.(*Backend)
	require.True(t, ok)
	assert.Equal(t, "earlysuspend", b.Name())
	assert.False(t, b.Synchronized())
	assert.True(t, d.IsInitialized())

	// later config changes do not touch the running backend
	d.setConfig(DefaultConfig())
	assert.Equal(t, env.cfg, d.config)

	ops2, err := d.Init()
	require.NoError(t, err)
	assert.Same(t, b, ops2.(*Backend))
}
