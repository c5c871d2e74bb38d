package billow

import "time"

// FrameStats holds the counters of one rendered frame. Timings are only
// measured in debug mode.
type FrameStats struct {
	// Billboards is the number of visible billboards considered.
	Billboards int
	// Drawn is the number of draw calls issued for billboards.
	Drawn int
	// Culled counts billboards beyond the far plane or behind the camera.
	Culled int
	// Skipped counts billboards whose projection was singular.
	Skipped int
	// Offscreen counts drawn billboards whose rect misses the viewport.
	Offscreen int

	ProjectTime time.Duration
	SortTime    time.Duration
	SubmitTime  time.Duration
}

// debugLog writes frame stats to the package logger at debug level.
func (s *Scene) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	total := stats.ProjectTime + stats.SortTime + stats.SubmitTime
	Logger().Debug("frame",
		"project", stats.ProjectTime,
		"sort", stats.SortTime,
		"submit", stats.SubmitTime,
		"total", total,
		"billboards", stats.Billboards,
		"drawn", stats.Drawn,
		"culled", stats.Culled,
		"skipped", stats.Skipped,
		"offscreen", stats.Offscreen,
	)
}
