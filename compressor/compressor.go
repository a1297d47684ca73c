// Package compressor 逐页重新编码 PDF 内容流，写出新文件并统计压缩效果。
//
// 流程是单线程、顺序执行的：打开输入、按页序压缩并追加到输出文档、
// 写到临时文件后 rename 到目标路径，最后从磁盘重新读取两个文件的大小。
// 同一个 outputPath 的并发调用需要调用方自己串行化。
// outputPath 不能和 inputPath 是同一个文件。
package compressor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"compress-pdf/pdf"
	"compress-pdf/util"

	"github.com/hashicorp/go-hclog"
)

// Stats 一次压缩的统计，大小单位 KB(1024)
type Stats struct {
	OriginalSizeKB        float64
	CompressedSizeKB      float64
	ReductionPercent      float64
	ProcessingTimeSeconds float64
	Pages                 int
	Level                 pdf.Level
}

type Option func(*Compressor)

func WithLogger(logger hclog.Logger) Option {
	return func(c *Compressor) {
		c.logger = logger
	}
}

// WithProgress 替换默认的日志进度输出
func WithProgress(fn ProgressFunc) Option {
	return func(c *Compressor) {
		c.progress = fn
	}
}

type Compressor struct {
	lib      pdf.Library
	logger   hclog.Logger
	progress ProgressFunc
	now      func() time.Time
}

func New(lib pdf.Library, opts ...Option) *Compressor {
	c := &Compressor{
		lib:    lib,
		logger: hclog.NewNullLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.progress == nil {
		c.progress = LogProgress(c.logger)
	}
	return c
}

// CompressFile highQuality 为 true 时使用 Standard，否则 Maximum
func CompressFile(ctx context.Context, lib pdf.Library, inputPath, outputPath string, highQuality bool, opts ...Option) (*Stats, error) {
	return New(lib, opts...).Compress(ctx, inputPath, outputPath, pdf.LevelFor(highQuality))
}

// Compress 压缩 inputPath 写到 outputPath（已存在则覆盖）。
// 失败时返回 *Error，outputPath 不会被创建或修改。
// ctx 只在页与页之间检查。
func (c *Compressor) Compress(ctx context.Context, inputPath, outputPath string, level pdf.Level) (*Stats, error) {
	stats, err := c.compress(ctx, inputPath, outputPath, level)
	if err != nil {
		c.report(err)
		return nil, err
	}
	return stats, nil
}

func (c *Compressor) report(err error) {
	switch KindOf(err) {
	case KindNotFound:
		c.logger.Error("input file not found", "error", err)
	case KindPermission:
		c.logger.Error("permission denied when trying to read/write files", "error", err)
	default:
		c.logger.Error("an unexpected error occurred", "error", err)
	}
}

func (c *Compressor) compress(ctx context.Context, inputPath, outputPath string, level pdf.Level) (*Stats, error) {
	start := c.now()

	if !level.Valid() {
		return nil, &Error{Kind: KindUnexpected, Op: "compress", Path: inputPath, Err: fmt.Errorf("unsupported level %s", level)}
	}

	// 先确认文件存在，再交给 PDF 引擎
	size, err := util.FileSize(inputPath)
	if err != nil {
		return nil, fsError("stat", inputPath, err, KindRead)
	}
	if size == 0 {
		return nil, degenerate(inputPath, "file is empty")
	}
	if err := checkReadable(inputPath); err != nil {
		return nil, err
	}
	if samePath(inputPath, outputPath) {
		return nil, &Error{Kind: KindUnexpected, Op: "compress", Path: outputPath, Err: errors.New("output path is the input file")}
	}

	doc, err := c.lib.Open(inputPath)
	if err != nil {
		return nil, &Error{Kind: KindRead, Op: "open", Path: inputPath, Err: err}
	}
	defer doc.Close()

	total, err := doc.PageCount()
	if err != nil {
		return nil, &Error{Kind: KindRead, Op: "page count", Path: inputPath, Err: err}
	}
	if total == 0 {
		return nil, degenerate(inputPath, "document has no pages")
	}

	writer, err := c.lib.NewWriter()
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Op: "new document", Path: outputPath, Err: err}
	}
	defer writer.Close()

	c.logger.Debug("compressing", "input", inputPath, "output", outputPath, "level", level.String())
	c.progress(Event{Stage: StageStart, Total: total})

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Kind: KindCanceled, Op: fmt.Sprintf("page %d", i+1), Path: inputPath, Err: err}
		}
		if err := c.compressPage(doc, writer, i, level, inputPath); err != nil {
			return nil, err
		}
		c.progress(Event{Stage: StagePage, Page: i + 1, Total: total})
	}

	written, err := writer.PageCount()
	if err != nil {
		return nil, &Error{Kind: KindWrite, Op: "page count", Path: outputPath, Err: err}
	}
	if written != total {
		return nil, &Error{Kind: KindUnexpected, Op: "page count", Path: outputPath,
			Err: fmt.Errorf("output has %d pages, input has %d", written, total)}
	}

	c.progress(Event{Stage: StageSave, Total: total})
	if err := save(writer, outputPath); err != nil {
		return nil, err
	}

	// 大小以磁盘上的文件为准
	originalKB, compressedKB, err := util.CompareFileSize(inputPath, outputPath)
	if err != nil {
		return nil, fsError("stat", outputPath, err, KindUnexpected)
	}
	if originalKB == 0 {
		return nil, degenerate(inputPath, "file is empty")
	}

	stats := &Stats{
		OriginalSizeKB:   util.Round(originalKB, 2),
		CompressedSizeKB: util.Round(compressedKB, 2),
		ReductionPercent: util.Round(util.ReductionPercent(originalKB, compressedKB), 1),
		Pages:            total,
		Level:            level,
	}
	stats.ProcessingTimeSeconds = util.Round(c.now().Sub(start).Seconds(), 2)

	c.progress(Event{Stage: StageDone, Total: total, Stats: stats})
	return stats, nil
}

func (c *Compressor) compressPage(doc pdf.Document, writer pdf.Writer, index int, level pdf.Level, inputPath string) error {
	page, err := doc.Page(index)
	if err != nil {
		return &Error{Kind: KindRead, Op: fmt.Sprintf("load page %d", index+1), Path: inputPath, Err: err}
	}
	defer page.Close()

	if err := page.CompressContentStreams(level); err != nil {
		return &Error{Kind: KindUnexpected, Op: fmt.Sprintf("compress page %d", page.Number()), Path: inputPath, Err: err}
	}
	if err := writer.AddPage(page); err != nil {
		return &Error{Kind: KindWrite, Op: fmt.Sprintf("add page %d", page.Number()), Path: inputPath, Err: err}
	}
	return nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fsError("open", path, err, KindRead)
	}
	return f.Close()
}

// samePath 覆盖输入文件后无法再比较大小，所以提前拒绝
func samePath(inputPath, outputPath string) bool {
	inInfo, err := os.Stat(inputPath)
	if err != nil {
		return false
	}
	if outInfo, err := os.Stat(outputPath); err == nil {
		return os.SameFile(inInfo, outInfo)
	}
	in, err1 := filepath.Abs(inputPath)
	out, err2 := filepath.Abs(outputPath)
	return err1 == nil && err2 == nil && in == out
}

// save 先写同目录临时文件再 rename，失败时清理临时文件
func save(writer pdf.Writer, outputPath string) (err error) {
	tmpPath := util.TempPath(outputPath)

	f, err := os.Create(tmpPath)
	if err != nil {
		return writeError("create", outputPath, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if err = writer.Save(f); err != nil {
		f.Close()
		return &Error{Kind: KindWrite, Op: "save", Path: outputPath, Err: err}
	}
	if err = f.Close(); err != nil {
		return writeError("close", outputPath, err)
	}
	if err = os.Rename(tmpPath, outputPath); err != nil {
		return writeError("rename", outputPath, err)
	}
	return nil
}

func writeError(op, path string, err error) *Error {
	e := fsError(op, path, err, KindWrite)
	if e.Kind == KindNotFound {
		// 输出目录不存在属于写失败，不是输入缺失
		e.Kind = KindWrite
	}
	return e
}
