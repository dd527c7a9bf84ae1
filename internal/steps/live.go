package steps

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Prewarm issues one throwaway query over the last minute so the first real
// request does not pay the source's cold start.
func (a *Aggregator) Prewarm(ctx context.Context) {
	now := a.now()
	data := a.query(ctx, now.Add(-time.Minute), now)
	log.Debugf("steps source prewarmed, last minute steps: %d", data.Steps)
}

// WatchToday streams today's stats whenever they change. It uses the source's
// own updates when it has them, polling every interval otherwise. At local
// midnight the stream moves on to the new day. The channel is closed once ctx
// is done.
func (a *Aggregator) WatchToday(ctx context.Context, every time.Duration) <-chan Stats {
	out := make(chan Stats)

	go func() {
		defer close(out)
		for {
			now := a.now()
			dayStart := startOfDay(now, a.loc)
			untilMidnight := dayStart.AddDate(0, 0, 1).Sub(now)

			dayCtx, cancel := context.WithTimeout(ctx, untilMidnight)
			a.watchDay(dayCtx, out, dayStart, every)
			cancel()

			if ctx.Err() != nil {
				return
			}
		}
	}()

	return out
}

func (a *Aggregator) watchDay(ctx context.Context, out chan<- Stats, dayStart time.Time, every time.Duration) {
	if streamer, ok := a.source.(updatesStreamer); ok {
		for data := range streamer.Updates(ctx, dayStart, every) {
			stats := a.statsFrom(data, a.UserWeight(ctx))
			select {
			case out <- stats:
			case <-ctx.Done():
				return
			}
		}
		// the source gave up before the day ended, do not spin
		select {
		case <-ctx.Done():
		case <-time.After(every):
		}
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var last *Stats
	for {
		stats := a.FetchTodayStats(ctx)
		if ctx.Err() != nil {
			return
		}
		if last == nil || *last != stats {
			select {
			case out <- stats:
				last = &stats
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
