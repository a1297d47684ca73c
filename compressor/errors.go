package compressor

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind 失败的类别
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindPermission
	KindRead
	KindWrite
	KindDegenerate
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission denied"
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindDegenerate:
		return "degenerate input"
	case KindCanceled:
		return "canceled"
	}
	return "unexpected"
}

// 与 errors.Is 配合使用的哨兵
var (
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrPermission = &Error{Kind: KindPermission}
	ErrRead       = &Error{Kind: KindRead}
	ErrWrite      = &Error{Kind: KindWrite}
	ErrDegenerate = &Error{Kind: KindDegenerate}
	ErrCanceled   = &Error{Kind: KindCanceled}
)

// Error 压缩失败，Op 是出错的步骤，Path 是相关文件
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 按 Kind 匹配，哨兵之间不比较 Op/Path
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf 取出错误的类别，不是 *Error 时为 KindUnexpected
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// fsError 把文件系统错误归类，fallback 用于其他 I/O 错误
func fsError(op, path string, err error, fallback Kind) *Error {
	kind := fallback
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermission
	}
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func degenerate(path string, format string, args ...any) *Error {
	return &Error{Kind: KindDegenerate, Op: "open", Path: path, Err: fmt.Errorf(format, args...)}
}
