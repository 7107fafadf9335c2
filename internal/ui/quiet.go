package ui

import "github.com/bamsammich/ezscan/internal/stats"

// quietPresenter drains events and produces no output.
type quietPresenter struct {
	stats *stats.Collector
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for range events {
		// The engine updates the collector directly; nothing to show.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
