package biz

import (
	"errors"
	"grps/framework/grpsError"
)

var (
	Fail              = grpsError.NewError(1, errors.New("request failed"))
	ConnectionError   = grpsError.NewError(2, errors.New("connection error"))
	RpcError          = grpsError.NewError(3, errors.New("rpc error"))
	TimeoutError      = grpsError.NewError(4, errors.New("deadline exceeded"))
	InvalidStateError = grpsError.NewError(5, errors.New("invalid connection state"))
	IOError           = grpsError.NewError(6, errors.New("read input failed"))
)
