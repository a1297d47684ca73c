package pdf

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/responses"
)

// Pdfium 基于 go-pdfium 的 Library 实现。
// pdfium 实例不是并发安全的，一个 Pdfium 同一时间只能服务一次压缩。
type Pdfium struct {
	instance pdfium.Pdfium
}

func NewPdfium(instance pdfium.Pdfium) *Pdfium {
	return &Pdfium{instance: instance}
}

func (p *Pdfium) Open(path string) (Document, error) {
	pdfDoc, err := p.instance.FPDF_LoadDocument(&requests.FPDF_LoadDocument{
		Path:     &path,
		Password: nil,
	})
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return &pdfiumDocument{instance: p.instance, ref: pdfDoc.Document}, nil
}

func (p *Pdfium) NewWriter() (Writer, error) {
	newDoc, err := p.instance.FPDF_CreateNewDocument(&requests.FPDF_CreateNewDocument{})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return &pdfiumWriter{instance: p.instance, ref: newDoc.Document}, nil
}

type pdfiumDocument struct {
	instance pdfium.Pdfium
	ref      references.FPDF_DOCUMENT
	closed   bool
}

func (d *pdfiumDocument) PageCount() (int, error) {
	pageCountRes, err := d.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: d.ref,
	})
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return pageCountRes.PageCount, nil
}

func (d *pdfiumDocument) Page(index int) (Page, error) {
	pdfPage, err := d.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: d.ref,
		Index:    index,
	})
	if err != nil {
		return nil, fmt.Errorf("load page %d: %w", index+1, err)
	}
	return &pdfiumPage{doc: d, index: index, ref: pdfPage.Page}, nil
}

func (d *pdfiumDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	_, err := d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: d.ref,
	})
	return err
}

type pdfiumPage struct {
	doc    *pdfiumDocument
	index  int
	ref    references.FPDF_PAGE
	closed bool
}

func (p *pdfiumPage) Number() int {
	return p.index + 1
}

func (p *pdfiumPage) request() requests.Page {
	return requests.Page{
		ByReference: &p.ref,
	}
}

// CompressContentStreams 让 pdfium 根据页面对象重新生成内容流。
// Maximum 额外把注释和表单的外观流压平进页面内容，去掉交互结构。
func (p *pdfiumPage) CompressContentStreams(level Level) error {
	if !level.Valid() {
		return fmt.Errorf("page %d: unsupported level %s", p.Number(), level)
	}

	_, err := p.doc.instance.FPDFPage_GenerateContent(&requests.FPDFPage_GenerateContent{
		Page: p.request(),
	})
	if err != nil {
		return fmt.Errorf("generate content page %d: %w", p.Number(), err)
	}

	if level == Maximum {
		flattenRes, err := p.doc.instance.FPDFPage_Flatten(&requests.FPDFPage_Flatten{
			Page:  p.request(),
			Usage: requests.FPDFPage_FlattenUsagePrint,
		})
		if err != nil {
			return fmt.Errorf("flatten page %d: %w", p.Number(), err)
		}
		if err := flattenResult(p.Number(), flattenRes.Result); err != nil {
			return err
		}
	}
	return nil
}

// flattenResult pdfium 的 flatten 失败只体现在 Result 里，没有可压平的内容不算失败
func flattenResult(page int, result responses.FPDFPage_FlattenResult) error {
	if result == responses.FPDFPage_FlattenResultFail {
		return fmt.Errorf("flatten page %d: pdfium reported failure", page)
	}
	return nil
}

func (p *pdfiumPage) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	_, err := p.doc.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: p.ref,
	})
	return err
}

type pdfiumWriter struct {
	instance pdfium.Pdfium
	ref      references.FPDF_DOCUMENT
	pages    int
	saved    bool
	closed   bool
}

// AddPage 把页面复制到输出文档末尾，页面仍归源文档所有
func (w *pdfiumWriter) AddPage(page Page) error {
	src, ok := page.(*pdfiumPage)
	if !ok {
		return fmt.Errorf("page %d was not loaded by pdfium", page.Number())
	}

	// PageRange 是从 1 开始的页码
	pageRange := strconv.Itoa(src.Number())
	_, err := w.instance.FPDF_ImportPages(&requests.FPDF_ImportPages{
		Source:      src.doc.ref,
		Destination: w.ref,
		PageRange:   &pageRange,
		Index:       w.pages,
	})
	if err != nil {
		return fmt.Errorf("import page %d: %w", src.Number(), err)
	}
	w.pages++
	return nil
}

func (w *pdfiumWriter) PageCount() (int, error) {
	pageCountRes, err := w.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: w.ref,
	})
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return pageCountRes.PageCount, nil
}

func (w *pdfiumWriter) Save(out io.Writer) error {
	if w.saved {
		return errors.New("document already saved")
	}
	w.saved = true

	_, err := w.instance.FPDF_SaveAsCopy(&requests.FPDF_SaveAsCopy{
		Document:   w.ref,
		FileWriter: out,
		Flags:      requests.SaveFlagNoIncremental,
	})
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (w *pdfiumWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: w.ref,
	})
	return err
}
