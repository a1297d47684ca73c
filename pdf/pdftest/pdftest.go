// Package pdftest 用 pdfium 生成测试用的 PDF
package pdftest

import (
	"testing"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
)

// WriteDocument 生成 pages 页的 A4 文档，每页画一个矩形，保存到 path
func WriteDocument(t testing.TB, instance pdfium.Pdfium, path string, pages int) {
	t.Helper()

	newDoc, err := instance.FPDF_CreateNewDocument(&requests.FPDF_CreateNewDocument{})
	if err != nil {
		t.Fatalf("create document: %v", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: newDoc.Document,
	})

	for i := 0; i < pages; i++ {
		newPage, err := instance.FPDFPage_New(&requests.FPDFPage_New{
			Document:  newDoc.Document,
			PageIndex: i,
			Width:     595,
			Height:    842,
		})
		if err != nil {
			t.Fatalf("new page %d: %v", i, err)
		}

		rectObj, err := instance.FPDFPageObj_CreateNewRect(&requests.FPDFPageObj_CreateNewRect{
			X: 50,
			Y: 50,
			W: 200,
			H: 100,
		})
		if err != nil {
			t.Fatalf("create rect: %v", err)
		}

		page := requests.Page{ByReference: &newPage.Page}
		_, err = instance.FPDFPage_InsertObject(&requests.FPDFPage_InsertObject{
			Page:       page,
			PageObject: rectObj.PageObject,
		})
		if err != nil {
			t.Fatalf("insert rect: %v", err)
		}

		_, err = instance.FPDFPage_GenerateContent(&requests.FPDFPage_GenerateContent{
			Page: page,
		})
		if err != nil {
			t.Fatalf("generate content: %v", err)
		}

		_, err = instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
			Page: newPage.Page,
		})
		if err != nil {
			t.Fatalf("close page: %v", err)
		}
	}

	_, err = instance.FPDF_SaveAsCopy(&requests.FPDF_SaveAsCopy{
		Document: newDoc.Document,
		FilePath: &path,
		Flags:    requests.SaveFlagNoIncremental,
	})
	if err != nil {
		t.Fatalf("save document: %v", err)
	}
}

// PageCount 重新打开 path 读页数
func PageCount(t testing.TB, instance pdfium.Pdfium, path string) int {
	t.Helper()

	pdfDoc, err := instance.FPDF_LoadDocument(&requests.FPDF_LoadDocument{
		Path: &path,
	})
	if err != nil {
		t.Fatalf("load document %s: %v", path, err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: pdfDoc.Document,
	})

	pageCountRes, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: pdfDoc.Document,
	})
	if err != nil {
		t.Fatalf("page count %s: %v", path, err)
	}
	return pageCountRes.PageCount
}
