// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-autosuspend/loader"
	"github.com/linuxdeepin/dde-autosuspend/system/earlysuspend"
	login1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.login1"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("daemon/dde-autosuspend")

var _options struct {
	verbose    bool
	logLevel   string
	configFile string
	backend    string
	list       bool
}

func toLogLevel(name string) (log.Priority, error) {
	name = strings.ToLower(name)
	logLevel := log.LevelInfo
	var err error
	switch name {
	case "":
		logLevel = log.LevelInfo
	case "error":
		logLevel = log.LevelError
	case "warn":
		logLevel = log.LevelWarning
	case "info":
		logLevel = log.LevelInfo
	case "debug":
		logLevel = log.LevelDebug
	case "no":
		logLevel = log.LevelDisable
	default:
		err = fmt.Errorf("%s is not support", name)
	}

	return logLevel, err
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func init() {
	// -v | -verbose
	const verboseUsage = "Show much more message, shorthand for --loglevel debug."
	flag.BoolVar(&_options.verbose, "v", false, verboseUsage)
	flag.BoolVar(&_options.verbose, "verbose", false, verboseUsage)

	// -l | -loglevel
	const logLevelUsage = "Set log level, possible value is error/warn/info/debug/no, overrides the config file"
	flag.StringVar(&_options.logLevel, "l", "", logLevelUsage)
	flag.StringVar(&_options.logLevel, "loglevel", "", logLevelUsage)

	// -c | -config
	const configUsage = "Path of the yaml config file."
	flag.StringVar(&_options.configFile, "c", defaultConfigFile, configUsage)
	flag.StringVar(&_options.configFile, "config", defaultConfigFile, configUsage)

	flag.StringVar(&_options.backend, "backend", "",
		"Comma separated backends to try in order, overrides the config file.")
	flag.BoolVar(&_options.list, "list", false, "List the registered backends and exit.")
}

func setLogLevel(pri log.Priority) {
	logger.SetLogLevel(pri)
	loader.SetLogLevel(pri)
}

// effectiveLogLevel prefers the command line over the config file.
func effectiveLogLevel(cfg *Config) (log.Priority, error) {
	if _options.verbose {
		return log.LevelDebug, nil
	}
	if _options.logLevel != "" {
		return toLogLevel(_options.logLevel)
	}
	return toLogLevel(cfg.LogLevel)
}

func isInShutdown(conn *dbus.Conn) bool {
	manager := login1.NewManager(conn)
	val, err := manager.PreparingForShutdown().Get(0)
	if err != nil {
		logger.Debug("failed to get PreparingForShutdown:", err)
		return false
	}
	return val
}

func main() {
	flag.Parse()

	if _options.list {
		for _, m := range loader.List() {
			fmt.Println(m.Name())
		}
		return
	}

	cfg, err := loadConfig(_options.configFile)
	if err != nil {
		logger.Fatal("failed to load config:", err)
	}

	logLevel, err := effectiveLogLevel(cfg)
	if err != nil {
		logger.Warning("failed to parse loglevel:", err)
		os.Exit(1)
	}
	setLogLevel(logLevel)

	backends := cfg.Backends
	if _options.backend != "" {
		backends = splitList(_options.backend)
	}

	service, err := dbusutil.NewSystemService()
	if err != nil {
		logger.Fatal("failed to new system service", err)
	}

	hasOwner, err := service.NameHasOwner(dbusServiceName)
	if err != nil {
		logger.Fatal("failed to call NameHasOwner:", err)
	}
	if hasOwner {
		logger.Warningf("name %q already has the owner", dbusServiceName)
		os.Exit(1)
	}

	if isInShutdown(service.Conn()) {
		logger.Warning("system is in shutdown, no need to run")
		os.Exit(1)
	}

	earlysuspend.Configure(cfg.EarlySuspend)
	module, ops, err := loader.Select(backends, loader.SelectFlagIgnoreMissingModule)
	if err != nil {
		logger.Fatal(err)
	}

	manager := newManager(module.Name(), ops)
	err = service.Export(dbusPath, manager)
	if err != nil {
		logger.Fatal("failed to export:", err)
	}

	err = service.RequestName(dbusServiceName)
	if err != nil {
		logger.Fatal("failed to request name:", err)
	}

	cw, err := newConfigWatcher(_options.configFile, func(cfg *Config) {
		if _options.verbose || _options.logLevel != "" {
			return
		}
		pri, err := toLogLevel(cfg.LogLevel)
		if err != nil {
			logger.Warning("ignore log_level in config:", err)
			return
		}
		logger.Info("apply log level from config:", cfg.LogLevel)
		setLogLevel(pri)
	})
	if err != nil {
		logger.Warning("failed to watch config:", err)
	} else {
		defer cw.close()
	}

	logger.Infof("autosuspend ready, backend %s", module.Name())
	service.Wait()
}
