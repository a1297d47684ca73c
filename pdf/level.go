package pdf

import (
	"fmt"
	"strings"
)

// Level 压缩档位，只有两个具名预设，具体含义由 PDF 引擎决定
type Level int

const (
	// Standard 对应 high_quality=true，引擎默认的压缩力度
	Standard Level = iota
	// Maximum 对应 high_quality=false，最大压缩力度
	Maximum
)

func (l Level) String() string {
	switch l {
	case Standard:
		return "standard"
	case Maximum:
		return "maximum"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) Valid() bool {
	return l == Standard || l == Maximum
}

// LevelFor 把 high_quality 开关映射到档位
func LevelFor(highQuality bool) Level {
	if highQuality {
		return Standard
	}
	return Maximum
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return Standard, nil
	case "maximum", "max":
		return Maximum, nil
	}
	return Standard, fmt.Errorf("unknown compression level %q", s)
}
