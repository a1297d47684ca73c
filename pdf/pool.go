package pdf

import (
	"fmt"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/single_threaded"
)

// Engine 持有 pdfium 的 pool 和实例，用完必须 Close
type Engine struct {
	*Pdfium
	pool     pdfium.Pool
	instance pdfium.Pdfium
}

// StartEngine 初始化 PDFium 并取出一个实例，timeout 是等待实例的时间
func StartEngine(timeout time.Duration) (*Engine, error) {
	pool := single_threaded.Init(single_threaded.Config{})

	instance, err := pool.GetInstance(timeout)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("get pdfium instance: %w", err)
	}

	return &Engine{
		Pdfium:   NewPdfium(instance),
		pool:     pool,
		instance: instance,
	}, nil
}

// Instance 底层 pdfium 实例
func (e *Engine) Instance() pdfium.Pdfium {
	return e.instance
}

func (e *Engine) Close() error {
	if err := e.instance.Close(); err != nil {
		e.pool.Close()
		return err
	}
	return e.pool.Close()
}
