package util

import (
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileSize 从文件系统读取文件大小，单位字节
func FileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}

// KB 字节换算成 KB（1024）
func KB(size int64) float64 {
	return float64(size) / 1024
}

// Round 四舍五入到 places 位小数
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ReductionPercent 体积减少的百分比，压缩后变大时为负数。
// original 为 0 时没有意义，由调用方提前拦截。
func ReductionPercent(originalKB, compressedKB float64) float64 {
	return (originalKB - compressedKB) / originalKB * 100
}

// CompareFileSize 返回两个文件的大小（KB）
func CompareFileSize(filePath1 string, filePath2 string) (float64, float64, error) {
	size1, err := FileSize(filePath1)
	if err != nil {
		return 0, 0, err
	}
	size2, err := FileSize(filePath2)
	if err != nil {
		return 0, 0, err
	}
	return KB(size1), KB(size2), nil
}

// TempPath 在目标文件同目录下生成临时文件名，保证 rename 不跨设备
func TempPath(dstPath string) string {
	dir, name := filepath.Split(dstPath)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+".tmp")
}
