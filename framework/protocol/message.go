package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// GrpsMessage 字段编号，与服务端 grps.proto 保持一致
const (
	statusField  protowire.Number = 1
	strDataField protowire.Number = 3
	binDataField protowire.Number = 4

	statusCodeField protowire.Number = 1
	statusMsgField  protowire.Number = 2
)

type Kind int

const (
	KindEmpty  Kind = iota // 两个字段都没有设置
	KindText               // str_data
	KindBinary             // bin_data
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "str_data"
	case KindBinary:
		return "bin_data"
	default:
		return "empty"
	}
}

// Status 服务端回包携带的状态
type Status struct {
	Code int32
	Msg  string
}

// Envelope 请求和响应共用的消息体 str_data 和 bin_data 是 oneof 关系
type Envelope struct {
	Status *Status

	kind Kind
	str  string
	bin  []byte
}

// Payload Decode 的结果
type Payload struct {
	Kind   Kind
	Text   string
	Binary []byte
}

func EncodeText(s string) *Envelope {
	return &Envelope{kind: KindText, str: s}
}

// EncodeBinary 拷贝一份 b，发送后调用方再修改 b 不影响消息
func EncodeBinary(b []byte) *Envelope {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &Envelope{kind: KindBinary, bin: buf}
}

// Decode 没有设置任何字段时返回 KindEmpty，不算错误
func Decode(e *Envelope) Payload {
	if e == nil {
		return Payload{Kind: KindEmpty}
	}
	switch e.kind {
	case KindText:
		return Payload{Kind: KindText, Text: e.str}
	case KindBinary:
		return Payload{Kind: KindBinary, Binary: e.bin}
	}
	return Payload{Kind: KindEmpty}
}

func (e *Envelope) Kind() Kind {
	if e == nil {
		return KindEmpty
	}
	return e.kind
}

func (e *Envelope) GetStrData() string {
	if e == nil || e.kind != KindText {
		return ""
	}
	return e.str
}

func (e *Envelope) GetBinData() []byte {
	if e == nil || e.kind != KindBinary {
		return nil
	}
	return e.bin
}

func (e *Envelope) GetStatus() *Status {
	if e == nil {
		return nil
	}
	return e.Status
}

// Marshal proto3 编码，oneof 字段只要设置了就写出，即使是空值
func (e *Envelope) Marshal() ([]byte, error) {
	var b []byte
	if e == nil {
		return b, nil
	}
	if e.Status != nil {
		var sb []byte
		if e.Status.Code != 0 {
			sb = protowire.AppendTag(sb, statusCodeField, protowire.VarintType)
			sb = protowire.AppendVarint(sb, uint64(int64(e.Status.Code)))
		}
		if e.Status.Msg != "" {
			sb = protowire.AppendTag(sb, statusMsgField, protowire.BytesType)
			sb = protowire.AppendString(sb, e.Status.Msg)
		}
		b = protowire.AppendTag(b, statusField, protowire.BytesType)
		b = protowire.AppendBytes(b, sb)
	}
	switch e.kind {
	case KindText:
		b = protowire.AppendTag(b, strDataField, protowire.BytesType)
		b = protowire.AppendString(b, e.str)
	case KindBinary:
		b = protowire.AppendTag(b, binDataField, protowire.BytesType)
		b = protowire.AppendBytes(b, e.bin)
	}
	return b, nil
}

// Unmarshal 未知字段直接跳过；oneof 出现多次时以最后一个为准
func (e *Envelope) Unmarshal(data []byte) error {
	*e = Envelope{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("grps message: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == statusField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("grps message status: %w", protowire.ParseError(n))
			}
			st, err := unmarshalStatus(v)
			if err != nil {
				return err
			}
			e.Status = st
			data = data[n:]
		case num == strDataField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return fmt.Errorf("grps message str_data: %w", protowire.ParseError(n))
			}
			e.kind, e.str, e.bin = KindText, v, nil
			data = data[n:]
		case num == binDataField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("grps message bin_data: %w", protowire.ParseError(n))
			}
			buf := make([]byte, len(v))
			copy(buf, v)
			e.kind, e.str, e.bin = KindBinary, "", buf
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("grps message field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

func unmarshalStatus(data []byte) (*Status, error) {
	st := &Status{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("grps status: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == statusCodeField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("grps status code: %w", protowire.ParseError(n))
			}
			st.Code = int32(v)
			data = data[n:]
		case num == statusMsgField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, fmt.Errorf("grps status msg: %w", protowire.ParseError(n))
			}
			st.Msg = v
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errors.New("grps status: invalid field")
			}
			data = data[n:]
		}
	}
	return st, nil
}

// String 文本格式输出，例如 status:{code:0 msg:"ok"} str_data:"hello"
func (e *Envelope) String() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string
	if e.Status != nil {
		parts = append(parts, fmt.Sprintf("status:{code:%d msg:%s}", e.Status.Code, strconv.Quote(e.Status.Msg)))
	}
	switch e.kind {
	case KindText:
		parts = append(parts, "str_data:"+strconv.Quote(e.str))
	case KindBinary:
		parts = append(parts, "bin_data:"+strconv.Quote(string(e.bin)))
	}
	return strings.Join(parts, " ")
}
