// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package earlysuspend

// watcher follows the display driver through sleep and wake, publishing each
// step to the coordinator. It runs until one of the waits fails and is never
// restarted.
type watcher struct {
	sleep eventSource
	wake  eventSource
	coord *coordinator
}

func (w *watcher) loop() {
	defer w.coord.markWatcherExited()

	for {
		err := w.sleep.Wait()
		if err != nil {
			logger.Warning("Failed reading wait_for_fb_sleep, exiting earlysuspend watcher:", err)
			return
		}
		logger.Debug("display entered sleep")
		w.coord.setPhase(PhaseMem)

		err = w.wake.Wait()
		if err != nil {
			logger.Warning("Failed reading wait_for_fb_wake, exiting earlysuspend watcher:", err)
			return
		}
		logger.Debug("display woke up")
		w.coord.setPhase(PhaseOn)
	}
}
