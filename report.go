package main

import (
	"fmt"
	"io"

	"compress-pdf/compressor"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	growthColor  = color.New(color.FgYellow)
)

// printSummary 压缩结果，输出体积变大时用黄色提示
func printSummary(out io.Writer, stats *compressor.Stats) {
	successColor.Fprintln(out, "Compression completed successfully!")
	fmt.Fprintf(out, "Original size: %.2f KB\n", stats.OriginalSizeKB)
	fmt.Fprintf(out, "Compressed size: %.2f KB\n", stats.CompressedSizeKB)
	if stats.ReductionPercent < 0 {
		growthColor.Fprintf(out, "Reduction: %.1f%%\n", stats.ReductionPercent)
	} else {
		fmt.Fprintf(out, "Reduction: %.1f%%\n", stats.ReductionPercent)
	}
	fmt.Fprintf(out, "Processing time: %.2f seconds\n", stats.ProcessingTimeSeconds)
}
