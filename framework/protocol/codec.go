package protocol

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
)

// Codec grpc 编解码器 Envelope 走手写的 protowire 编码，其余 proto.Message 走官方实现
// 通过 grpc.ForceCodec 按调用指定，不覆盖全局注册的 proto 编解码器
type Codec struct{}

var _ encoding.Codec = Codec{}

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *Envelope:
		return m.Marshal()
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("grps codec: unsupported type %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *Envelope:
		return m.Unmarshal(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("grps codec: unsupported type %T", v)
}

func (Codec) Name() string {
	return "proto"
}
