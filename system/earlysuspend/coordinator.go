// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

import (
	"sync"

	"golang.org/x/xerrors"
)

// ErrWatcherExited is returned by Enable and Disable when fail fast is
// configured and the display watcher is no longer running.
var ErrWatcherExited = xerrors.New("early suspend watcher exited")

type coordinator struct {
	// reqMu serializes requests, one write plus its wait at a time.
	reqMu sync.Mutex
	power *powerState

	mu    sync.Mutex
	cond  *sync.Cond
	phase Phase

	// written before the backend is handed out, read-only afterwards
	syncEnabled bool
	failFast    bool

	watcherExited bool
}

func newCoordinator(power *powerState, failFast bool) *coordinator {
	c := &coordinator{
		power:    power,
		phase:    PhaseOn,
		failFast: failFast,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// request writes the target state and, when synchronized waiting is on,
// blocks until the watcher has seen the display reach it. The wait checks
// the current phase only, so asking for the phase the display is already in
// returns right after the write.
func (c *coordinator) request(target Phase) error {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	err := c.power.request(target)
	if err != nil {
		logger.Warningf("Error writing %q to %s: %v", target, c.power.path, err)
		return err
	}

	if !c.syncEnabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for c.phase != target {
		if c.failFast && c.watcherExited {
			return ErrWatcherExited
		}
		c.cond.Wait()
	}
	return nil
}

func (c *coordinator) setPhase(phase Phase) {
	c.mu.Lock()
	c.phase = phase
	c.cond.Broadcast()
	c.mu.Unlock()
}

func (c *coordinator) getPhase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *coordinator) markWatcherExited() {
	c.mu.Lock()
	c.watcherExited = true
	c.cond.Broadcast()
	c.mu.Unlock()
}

func (c *coordinator) isWatcherExited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.watcherExited
}
