// Package service defines the lifecycle contract for host-edge subsystems
package service

import "errors"

// Service defines the lifecycle interface for host-edge subsystems
// Services own long-lived resources: the audio speaker, the catalog watcher
//
// Lifecycle:
//  1. Construction (via New*)
//  2. Start() - acquire devices, launch background goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Start begins service operation (launches goroutines if any)
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Group starts services in order and stops them in reverse
type Group struct {
	started []Service
}

// Start starts each service; on failure the already started ones are stopped
func (g *Group) Start(services ...Service) error {
	for _, s := range services {
		if err := s.Start(); err != nil {
			stopErr := g.Stop()
			return errors.Join(err, stopErr)
		}
		g.started = append(g.started, s)
	}
	return nil
}

// StartOptional starts one service the host can run without
// A failure stops only s itself and leaves the services already running untouched
func (g *Group) StartOptional(s Service) error {
	if err := s.Start(); err != nil {
		return errors.Join(err, s.Stop())
	}
	g.started = append(g.started, s)
	return nil
}

// Stop stops every started service in reverse order and joins their errors
func (g *Group) Stop() error {
	var errs []error
	for i := len(g.started) - 1; i >= 0; i-- {
		if err := g.started[i].Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	g.started = nil
	return errors.Join(errs...)
}
