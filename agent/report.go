package agent

import (
	"context"
	"log/slog"
)

// Reporter receives end-of-harvest statistics.
type Reporter interface {
	Report(ctx context.Context, r Report) error
}

// SlogReporter writes reports to the default logger.
type SlogReporter struct{}

func (SlogReporter) Report(_ context.Context, r Report) error {
	slog.Info("harvest statistics",
		"team", r.Team,
		"drone", r.Drone,
		"representative", r.Representative,
		"tick", r.Tick,
		"full_pct", r.FullPct,
		"partial_pct", r.PartialPct,
		"empty_pct", r.EmptyPct,
	)
	return nil
}
