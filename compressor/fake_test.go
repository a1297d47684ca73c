package compressor

import (
	"errors"
	"io"

	"compress-pdf/pdf"
)

// fakeLibrary 不解析 PDF，只记录驱动的调用
type fakeLibrary struct {
	pages      int
	outputSize int
	openErr    error
	failPage   int // 从 1 开始，0 表示不失败

	opened  bool
	levels  []pdf.Level
	added   []int
	closed  []int
	writers []*fakeWriter
}

func (l *fakeLibrary) Open(path string) (pdf.Document, error) {
	if l.openErr != nil {
		return nil, l.openErr
	}
	l.opened = true
	return &fakeDocument{lib: l}, nil
}

func (l *fakeLibrary) NewWriter() (pdf.Writer, error) {
	w := &fakeWriter{lib: l}
	l.writers = append(l.writers, w)
	return w, nil
}

type fakeDocument struct {
	lib *fakeLibrary
}

func (d *fakeDocument) PageCount() (int, error) {
	return d.lib.pages, nil
}

func (d *fakeDocument) Page(index int) (pdf.Page, error) {
	return &fakePage{lib: d.lib, number: index + 1}, nil
}

func (d *fakeDocument) Close() error {
	return nil
}

type fakePage struct {
	lib    *fakeLibrary
	number int
}

func (p *fakePage) Number() int {
	return p.number
}

func (p *fakePage) CompressContentStreams(level pdf.Level) error {
	if p.number == p.lib.failPage {
		return errors.New("broken content stream")
	}
	p.lib.levels = append(p.lib.levels, level)
	return nil
}

func (p *fakePage) Close() error {
	p.lib.closed = append(p.lib.closed, p.number)
	return nil
}

type fakeWriter struct {
	lib   *fakeLibrary
	pages int
	saved int
}

func (w *fakeWriter) AddPage(page pdf.Page) error {
	w.lib.added = append(w.lib.added, page.Number())
	w.pages++
	return nil
}

func (w *fakeWriter) PageCount() (int, error) {
	return w.pages, nil
}

func (w *fakeWriter) Save(out io.Writer) error {
	w.saved++
	_, err := out.Write(make([]byte, w.lib.outputSize))
	return err
}

func (w *fakeWriter) Close() error {
	return nil
}
