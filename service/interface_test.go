package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	name     string
	startErr error
	log      *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop "+f.name)
	return nil
}

func TestGroupStopsInReverse(t *testing.T) {
	var log []string
	var g Group
	assert.NoError(t, g.Start(
		&fakeService{name: "audio", log: &log},
		&fakeService{name: "watcher", log: &log},
	))
	assert.NoError(t, g.Stop())
	assert.Equal(t, []string{"start audio", "start watcher", "stop watcher", "stop audio"}, log)

	// Second stop is a no-op
	assert.NoError(t, g.Stop())
	assert.Len(t, log, 4)
}

func TestGroupUnwindsOnStartFailure(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	var g Group
	err := g.Start(
		&fakeService{name: "audio", log: &log},
		&fakeService{name: "watcher", startErr: boom, log: &log},
	)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start audio", "stop audio"}, log)
}

func TestStartOptionalFailureKeepsRunningServices(t *testing.T) {
	var log []string
	boom := errors.New("watch failed")
	var g Group
	assert.NoError(t, g.Start(&fakeService{name: "audio", log: &log}))

	err := g.StartOptional(&fakeService{name: "watcher", startErr: boom, log: &log})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start audio", "stop watcher"}, log, "only the failed service is stopped")

	assert.NoError(t, g.StartOptional(&fakeService{name: "export", log: &log}))
	assert.NoError(t, g.Stop())
	assert.Equal(t, []string{"start audio", "stop watcher", "start export", "stop export", "stop audio"}, log)
}
