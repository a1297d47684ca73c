package compressor

import (
	"github.com/hashicorp/go-hclog"
)

type Stage int

const (
	StageStart Stage = iota
	StagePage
	StageSave
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StagePage:
		return "page"
	case StageSave:
		return "save"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Event 压缩过程中的进度。Page 从 1 开始，只在 StagePage 有值；Stats 只在 StageDone 有值。
type Event struct {
	Stage Stage
	Page  int
	Total int
	Stats *Stats
}

// ProgressFunc 同步回调，在压缩流程的 goroutine 里调用
type ProgressFunc func(Event)

// LogProgress 把进度写到 hclog
func LogProgress(logger hclog.Logger) ProgressFunc {
	return func(ev Event) {
		switch ev.Stage {
		case StageStart:
			logger.Info("processing pages", "total", ev.Total)
		case StagePage:
			logger.Info("compressed page", "page", ev.Page, "total", ev.Total)
		case StageSave:
			logger.Info("saving compressed file", "pages", ev.Total)
		case StageDone:
			if ev.Stats == nil {
				return
			}
			logger.Info("compression completed",
				"original_kb", ev.Stats.OriginalSizeKB,
				"compressed_kb", ev.Stats.CompressedSizeKB,
				"reduction_percent", ev.Stats.ReductionPercent,
				"seconds", ev.Stats.ProcessingTimeSeconds,
			)
		}
	}
}
