package progress

import "time"

// ChunkStats summarises throughput after a dispatch chunk finished.
type ChunkStats struct {
	Chunk          int
	Completed      int
	Total          int
	ChunkTime      time.Duration
	AvgItemInChunk time.Duration
	AvgChunkTime   time.Duration
	AvgItemOverall time.Duration
	Elapsed        time.Duration
	Remaining      time.Duration
	Completion     time.Time
}

// NewChunkStats computes the statistics for chunk number chunk (1-based) of
// size items, given the run and chunk start times.
func NewChunkStats(now, runStart, chunkStart time.Time, chunk, size, completed, total int) ChunkStats {
	elapsed := now.Sub(runStart)
	chunkTime := now.Sub(chunkStart)
	remaining := Remaining(elapsed, completed, total)
	return ChunkStats{
		Chunk:          chunk,
		Completed:      completed,
		Total:          total,
		ChunkTime:      chunkTime,
		AvgItemInChunk: Average(chunkTime, size),
		AvgChunkTime:   Average(elapsed, chunk),
		AvgItemOverall: Average(elapsed, completed),
		Elapsed:        elapsed,
		Remaining:      remaining,
		Completion:     now.Add(remaining),
	}
}

// LogAttrs returns the statistics as slog key/value pairs.
func (s ChunkStats) LogAttrs() []any {
	return []any{
		"progress", s.Completed,
		"total", s.Total,
		"batch_time", FormatDuration(s.ChunkTime),
		"avg_item_time_in_batch", FormatDuration(s.AvgItemInChunk),
		"avg_batch_time", FormatDuration(s.AvgChunkTime),
		"avg_item_time", FormatDuration(s.AvgItemOverall),
		"elapsed", FormatDuration(s.Elapsed),
		"remaining", FormatDuration(s.Remaining),
		"forecast_completion", s.Completion.Format(time.TimeOnly),
	}
}
