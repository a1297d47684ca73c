package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"compress-pdf/pdf/pdftest"

	"github.com/klippa-app/go-pdfium/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engine *Engine

func TestMain(m *testing.M) {
	var err error
	engine, err = StartEngine(time.Second * 30)
	if err != nil {
		panic(err)
	}
	code := m.Run()
	engine.Close()
	os.Exit(code)
}

// copyPages 和压缩驱动一样逐页压缩并追加
func copyPages(t *testing.T, lib Library, inputPath string, level Level) Writer {
	t.Helper()

	doc, err := lib.Open(inputPath)
	require.NoError(t, err)
	t.Cleanup(func() { doc.Close() })

	total, err := doc.PageCount()
	require.NoError(t, err)

	writer, err := lib.NewWriter()
	require.NoError(t, err)
	t.Cleanup(func() { writer.Close() })

	for i := 0; i < total; i++ {
		page, err := doc.Page(i)
		require.NoError(t, err)
		assert.Equal(t, i+1, page.Number())
		require.NoError(t, page.CompressContentStreams(level))
		require.NoError(t, writer.AddPage(page))
		require.NoError(t, page.Close())
	}
	return writer
}

func TestPdfiumKeepsPageCount(t *testing.T) {
	for _, level := range []Level{Standard, Maximum} {
		t.Run(level.String(), func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "input.pdf")
			output := filepath.Join(dir, "output.pdf")
			pdftest.WriteDocument(t, engine.Instance(), input, 10)

			writer := copyPages(t, engine, input, level)
			count, err := writer.PageCount()
			require.NoError(t, err)
			assert.Equal(t, 10, count)

			var buf bytes.Buffer
			require.NoError(t, writer.Save(&buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			require.NoError(t, os.WriteFile(output, buf.Bytes(), 0o644))

			assert.Equal(t, 10, pdftest.PageCount(t, engine.Instance(), output))
		})
	}
}

func TestPdfiumAddSinglePage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	pdftest.WriteDocument(t, engine.Instance(), input, 3)

	doc, err := engine.Open(input)
	require.NoError(t, err)
	defer doc.Close()

	writer, err := engine.NewWriter()
	require.NoError(t, err)
	defer writer.Close()

	for _, index := range []int{2, 0} {
		page, err := doc.Page(index)
		require.NoError(t, err)
		require.NoError(t, page.CompressContentStreams(Maximum))
		require.NoError(t, writer.AddPage(page))
		require.NoError(t, page.Close())
	}

	count, err := writer.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFlattenResult(t *testing.T) {
	assert.NoError(t, flattenResult(1, responses.FPDFPage_FlattenResultSuccess))
	assert.NoError(t, flattenResult(1, responses.FPDFPage_FlattenResultNothingToDo))

	err := flattenResult(4, responses.FPDFPage_FlattenResultFail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flatten page 4")
}

func TestPdfiumOpenInvalid(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(input, []byte("this is not a pdf"), 0o644))

	_, err := engine.Open(input)
	assert.Error(t, err)
}

func TestPdfiumSaveOnce(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	pdftest.WriteDocument(t, engine.Instance(), input, 1)

	writer := copyPages(t, engine, input, Standard)
	var buf bytes.Buffer
	require.NoError(t, writer.Save(&buf))
	assert.Error(t, writer.Save(&buf))
}

func TestPdfiumRejectsForeignPage(t *testing.T) {
	writer, err := engine.NewWriter()
	require.NoError(t, err)
	defer writer.Close()

	err = writer.AddPage(foreignPage{})
	assert.Error(t, err)
}

func TestPdfiumUnsupportedLevel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.pdf")
	pdftest.WriteDocument(t, engine.Instance(), input, 1)

	doc, err := engine.Open(input)
	require.NoError(t, err)
	defer doc.Close()

	page, err := doc.Page(0)
	require.NoError(t, err)
	defer page.Close()

	assert.Error(t, page.CompressContentStreams(Level(3)))
}

type foreignPage struct{}

func (foreignPage) Number() int                        { return 1 }
func (foreignPage) CompressContentStreams(Level) error { return nil }
func (foreignPage) Close() error                       { return nil }
