// Package pdf 是压缩流程与第三方 PDF 引擎之间的边界。
//
// 驱动只依赖这里的接口，测试时可以替换成假的实现，不需要真实的 PDF 内容。
package pdf

import "io"

// Library 打开输入文档、创建空的输出文档
type Library interface {
	Open(path string) (Document, error)
	NewWriter() (Writer, error)
}

// Document 只读的输入文档
type Document interface {
	PageCount() (int, error)
	// Page 按 0 起始的下标加载页面，调用方负责 Close
	Page(index int) (Page, error)
	Close() error
}

// Page 内存中的一页
type Page interface {
	// Number 从 1 开始的页码
	Number() int
	// CompressContentStreams 按档位重新编码该页的内容流
	CompressContentStreams(level Level) error
	Close() error
}

// Writer 输出文档，页面按 AddPage 的顺序排列，Save 只调用一次
type Writer interface {
	AddPage(page Page) error
	PageCount() (int, error)
	Save(w io.Writer) error
	Close() error
}
