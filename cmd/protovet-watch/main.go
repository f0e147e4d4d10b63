package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/protovet/protovet/pkg/lint"
)

func main() {
	dir := flag.String("dir", ".", "Directory containing proto files to watch")
	delaySeconds := flag.Int("delay", 2, "Delay in seconds before relinting changed files")
	configFile := flag.String("config", "", "Path to options file (.protovet.yaml)")
	fix := flag.Bool("fix", false, "Rewrite changed files into canonical layout")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	opts, err := loadOptions(*dir, *configFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load options")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.WithError(err).Fatal("Failed to create watcher")
	}
	defer watcher.Close()

	if err := setupWatcher(watcher, *dir); err != nil {
		logger.WithError(err).Fatal("Failed to setup watcher")
	}

	checker := NewChecker(opts, time.Duration(*delaySeconds)*time.Second, *fix, logger)
	checker.Start()
	defer checker.Stop()

	// Queue existing files with staggered delays so startup does not
	// lint everything at once
	scanExistingFiles(*dir, checker, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.WithField("dir", *dir).Info("Watching for proto file changes")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if (event.Op&(fsnotify.Write|fsnotify.Create) != 0) && filepath.Ext(event.Name) == ".proto" {
				logger.WithField("file", event.Name).Debug("File changed")
				checker.QueueRecheck(event.Name)
			}

			// Also watch new directories
			if event.Op&fsnotify.Create != 0 {
				fi, err := os.Stat(event.Name)
				if err == nil && fi.IsDir() {
					logger.WithField("dir", event.Name).Debug("Watching new directory")
					if err := watcher.Add(event.Name); err != nil {
						logger.WithError(err).Warn("Failed to watch new directory")
					}
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.WithError(err).Warn("Watcher error")
		case sig := <-sigChan:
			logger.WithField("signal", sig.String()).Info("Shutting down")
			return
		}
	}
}

// loadOptions resolves the options file the same way the CLI does
func loadOptions(dir, configFile string) (*lint.Options, error) {
	if configFile != "" {
		return lint.LoadOptions(configFile)
	}
	return lint.LoadOptionsFromDir(dir)
}

// setupWatcher recursively adds all directories to the watcher
func setupWatcher(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// scanExistingFiles queues every existing proto file for an initial lint
func scanExistingFiles(dir string, checker *Checker, logger *logrus.Logger) {
	i := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".proto" {
			checker.QueueRecheckWithDelay(path, time.Duration(i*200)*time.Millisecond)
			i++
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to scan existing files")
		return
	}
	logger.WithField("count", i).Info("Queued existing proto files for initial lint")
}
