package protocol

import (
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestCodecEnvelope(t *testing.T) {
	c := Codec{}
	data, err := c.Marshal(EncodeText("hello"))
	if err != nil {
		t.Fatal(err)
	}
	out := new(Envelope)
	if err := c.Unmarshal(data, out); err != nil {
		t.Fatal(err)
	}
	if out.GetStrData() != "hello" {
		t.Fatalf("str_data = %q", out.GetStrData())
	}
}

func TestCodecProtoFallback(t *testing.T) {
	c := Codec{}
	data, err := c.Marshal(wrapperspb.String("v"))
	if err != nil {
		t.Fatal(err)
	}
	out := new(wrapperspb.StringValue)
	if err := c.Unmarshal(data, out); err != nil {
		t.Fatal(err)
	}
	if out.GetValue() != "v" {
		t.Fatalf("value = %q", out.GetValue())
	}
}

func TestCodecUnsupported(t *testing.T) {
	c := Codec{}
	if _, err := c.Marshal(struct{}{}); err == nil {
		t.Fatal("expected marshal error")
	}
	if err := c.Unmarshal(nil, &struct{}{}); err == nil {
		t.Fatal("expected unmarshal error")
	}
	if c.Name() != "proto" {
		t.Fatalf("name = %s", c.Name())
	}
}
