// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

// Package schedule runs periodic refresh jobs on a cron spec.
package schedule

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs registered jobs on one cron spec.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	spec    string
	jobs    []Job
	entryID cron.EntryID
	running bool
}

// Job is a named unit of periodic work.
type Job struct {
	Name string
	Run  func()
}

// New returns a scheduler for spec, a standard five-field cron expression or
// a descriptor such as "@every 10m", evaluated in loc.
func New(spec string, loc *time.Location, jobs ...Job) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		spec: spec,
		jobs: jobs,
	}
	id, err := s.cron.AddFunc(spec, s.runAll)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	s.entryID = id
	return s, nil
}

func (s *Scheduler) runAll() {
	for _, j := range s.jobs {
		start := time.Now()
		j.Run()
		slog.Info("scheduled job ran", "job", j.Name, "duration", time.Since(start).Round(time.Millisecond))
	}
}

// Next returns the next scheduled run after the scheduler started, or the
// zero time when it is not running.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// Spec returns the cron expression.
func (s *Scheduler) Spec() string { return s.spec }

// Start begins running jobs in the background. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	slog.Info("refresh scheduler started", "spec", s.spec, "next", s.Next())
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	<-s.cron.Stop().Done()
}
