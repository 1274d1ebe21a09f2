package protocol

import (
	"bytes"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestTextRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "你好，世界", "tab\tnew\nline", string(make([]byte, 4096))}
	for _, s := range cases {
		data, err := EncodeText(s).Marshal()
		if err != nil {
			t.Fatalf("marshal %q: %v", s, err)
		}
		var got Envelope
		if err := got.Unmarshal(data); err != nil {
			t.Fatalf("unmarshal %q: %v", s, err)
		}
		p := Decode(&got)
		if p.Kind != KindText {
			t.Fatalf("kind = %v, want %v", p.Kind, KindText)
		}
		if p.Text != s {
			t.Fatalf("text = %q, want %q", p.Text, s)
		}
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	cases := [][]byte{nil, {}, {0x01, 0x02, 0x03}, all}
	for _, b := range cases {
		data, err := EncodeBinary(b).Marshal()
		if err != nil {
			t.Fatalf("marshal %v: %v", b, err)
		}
		var got Envelope
		if err := got.Unmarshal(data); err != nil {
			t.Fatalf("unmarshal %v: %v", b, err)
		}
		p := Decode(&got)
		if p.Kind != KindBinary {
			t.Fatalf("kind = %v, want %v", p.Kind, KindBinary)
		}
		if !bytes.Equal(p.Binary, b) {
			t.Fatalf("binary = %v, want %v", p.Binary, b)
		}
	}
}

func TestEncodeBinaryCopiesInput(t *testing.T) {
	b := []byte{1, 2, 3}
	e := EncodeBinary(b)
	b[0] = 9
	if got := e.GetBinData(); got[0] != 1 {
		t.Fatalf("envelope aliased caller buffer: %v", got)
	}
}

func TestDecodeEmpty(t *testing.T) {
	if p := Decode(&Envelope{}); p.Kind != KindEmpty {
		t.Fatalf("kind = %v, want empty", p.Kind)
	}
	if p := Decode(nil); p.Kind != KindEmpty {
		t.Fatalf("nil kind = %v, want empty", p.Kind)
	}
	var e Envelope
	if err := e.Unmarshal(nil); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if e.Kind() != KindEmpty {
		t.Fatalf("kind = %v, want empty", e.Kind())
	}
}

func TestWireLayout(t *testing.T) {
	data, _ := EncodeText("hi").Marshal()
	want := []byte{0x1a, 0x02, 'h', 'i'}
	if !bytes.Equal(data, want) {
		t.Fatalf("str_data wire = %x, want %x", data, want)
	}
	data, _ = EncodeBinary([]byte{0xff}).Marshal()
	want = []byte{0x22, 0x01, 0xff}
	if !bytes.Equal(data, want) {
		t.Fatalf("bin_data wire = %x, want %x", data, want)
	}
	data, _ = (&Envelope{}).Marshal()
	if len(data) != 0 {
		t.Fatalf("empty envelope wire = %x, want nothing", data)
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, strDataField, protowire.BytesType)
	b = protowire.AppendString(b, "ok")
	b = protowire.AppendTag(b, 5, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte{0x0a, 0x00})

	var e Envelope
	if err := e.Unmarshal(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.GetStrData() != "ok" {
		t.Fatalf("str_data = %q, want ok", e.GetStrData())
	}
}

func TestUnmarshalLastOneofWins(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, strDataField, protowire.BytesType)
	b = protowire.AppendString(b, "first")
	b = protowire.AppendTag(b, binDataField, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte{7})

	var e Envelope
	if err := e.Unmarshal(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Kind() != KindBinary || e.GetStrData() != "" {
		t.Fatalf("got %v, want only bin_data", e.String())
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	var e Envelope
	if err := e.Unmarshal([]byte{0x1a, 0x05, 'h'}); err == nil {
		t.Fatal("expected error for truncated str_data")
	}
}

func TestStatusRoundTrip(t *testing.T) {
	in := EncodeText("x")
	in.Status = &Status{Code: -1, Msg: "failed"}
	data, err := in.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var out Envelope
	if err := out.Unmarshal(data); err != nil {
		t.Fatal(err)
	}
	st := out.GetStatus()
	if st == nil || st.Code != -1 || st.Msg != "failed" {
		t.Fatalf("status = %+v", st)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		e    *Envelope
		want string
	}{
		{EncodeText("hello"), `str_data:"hello"`},
		{EncodeBinary([]byte{1, 2}), `bin_data:"\x01\x02"`},
		{&Envelope{}, ``},
		{&Envelope{Status: &Status{Code: 200, Msg: "OK"}}, `status:{code:200 msg:"OK"}`},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
