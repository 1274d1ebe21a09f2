package remote

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"grps/common/config"
	"grps/common/logs"
	"grps/framework/protocol"
)

// 失败的调用由调用方记录Error 拦截器只打Warn
func TestLoggingFailedCallBelowError(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	oldStderr, oldConf := os.Stderr, config.Conf
	os.Stderr = w
	config.Conf = &config.Config{Log: config.LogConf{Level: "error"}}
	logs.InitLog("test")
	defer func() {
		os.Stderr, config.Conf = oldStderr, oldConf
		logs.InitLog("")
	}()

	c := dial(t, "127.0.0.1:1")
	if _, err := c.Predict(context.Background(), protocol.EncodeText("x")); err == nil {
		t.Fatal("expected error")
	}
	c.Close(0)
	_ = w.Close()
	out, _ := io.ReadAll(r)
	if strings.Contains(string(out), "rpc call") {
		t.Fatalf("failed call logged at error level: %s", out)
	}
}
