package grpsError

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error Code 区分错误类别，同时作为进程退出码
type Error struct {
	Code   int
	Err    error
	Target string         //目标地址或者文件路径
	Status *status.Status //只有rpc错误才有
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Target != "" {
		fmt.Fprintf(&b, " (%s)", e.Target)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 错误码相同即认为是同一类错误
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func NewError(code int, err error) *Error {
	return &Error{
		Code: code,
		Err:  err,
	}
}

// Wrap 基于当前错误类别 生成带上下文的新错误
func (e *Error) Wrap(target string, cause error) *Error {
	return &Error{
		Code:   e.Code,
		Err:    e.Err,
		Target: target,
		Cause:  cause,
	}
}

func (e *Error) WithStatus(target string, st *status.Status) *Error {
	w := e.Wrap(target, st.Err())
	w.Status = st
	return w
}

func (e *Error) GrpcCode() codes.Code {
	if e.Status == nil {
		return codes.Unknown
	}
	return e.Status.Code()
}

func (e *Error) Message() string {
	if e.Status == nil {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return e.Err.Error()
	}
	return e.Status.Message()
}

// Code 取错误码 非 *Error 统一返回1
func Code(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 1
}
