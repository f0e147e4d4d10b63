package main

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/protovet/protovet/pkg/format"
	"github.com/protovet/protovet/pkg/lint"
)

// Checker relints files after a debounce delay. Editors tend to fire
// several events per save, so each queued path only runs once its last
// event is older than the delay.
type Checker struct {
	opts   *lint.Options
	delay  time.Duration
	fix    bool
	logger *logrus.Logger

	mu      sync.Mutex
	pending map[string]time.Time

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewChecker creates a debounced lint checker
func NewChecker(opts *lint.Options, delay time.Duration, fix bool, logger *logrus.Logger) *Checker {
	return &Checker{
		opts:    opts,
		delay:   delay,
		fix:     fix,
		logger:  logger,
		pending: make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
}

// Start launches the background worker
func (c *Checker) Start() {
	c.wg.Add(1)
	go c.run()
}

// Stop signals the worker to exit and waits for it
func (c *Checker) Stop() {
	close(c.stop)
	c.wg.Wait()
}

// QueueRecheck schedules a path for linting after the debounce delay.
// Repeated calls for the same path reset its timer.
func (c *Checker) QueueRecheck(path string) {
	c.QueueRecheckWithDelay(path, c.delay)
}

// QueueRecheckWithDelay schedules a path with a custom delay
func (c *Checker) QueueRecheckWithDelay(path string, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[path] = time.Now().Add(delay)
}

func (c *Checker) run() {
	defer c.wg.Done()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			for _, path := range c.takeDue() {
				c.checkFile(path)
			}
		}
	}
}

// takeDue removes and returns every pending path whose timer expired
func (c *Checker) takeDue() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var due []string
	for path, deadline := range c.pending {
		if now.After(deadline) {
			due = append(due, path)
			delete(c.pending, path)
		}
	}
	return due
}

func (c *Checker) checkFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		c.logger.WithError(err).WithField("file", path).Warn("Failed to read file")
		return
	}

	report := lint.Validate(string(content)).Filter(c.opts)

	entry := c.logger.WithFields(logrus.Fields{
		"file":     path,
		"valid":    report.Valid,
		"errors":   len(report.Errors),
		"warnings": len(report.Warnings),
	})

	if report.Valid && len(report.Warnings) == 0 && len(report.Info) == 0 {
		entry.Info("File is clean")
	} else {
		entry.Info("Lint issues found")
		for _, issue := range report.AllIssues() {
			c.logger.WithFields(logrus.Fields{
				"file":     path,
				"line":     issue.Line,
				"column":   issue.Column,
				"rule":     issue.Rule,
				"severity": issue.Severity,
			}).Warn(issue.Message)
		}
	}

	if c.fix {
		c.fixFile(path, string(content))
	}
}

// fixFile rewrites the file into canonical layout when it drifts
func (c *Checker) fixFile(path, content string) {
	formatted := format.Format(content)
	if formatted == content {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		c.logger.WithError(err).WithField("file", path).Warn("Failed to stat file")
		return
	}
	if err := os.WriteFile(path, []byte(formatted), info.Mode()); err != nil {
		c.logger.WithError(err).WithField("file", path).Warn("Failed to rewrite file")
		return
	}
	c.logger.WithField("file", path).Info("Rewrote file into canonical layout")
}
