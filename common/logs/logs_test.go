package logs

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"grps/common/config"
)

func TestError(t *testing.T) {
	logger = log.New(os.Stderr)
	Error("test:%v", 10)
}

func TestInitLogLevel(t *testing.T) {
	old := config.Conf
	defer func() { config.Conf = old }()
	config.Conf = &config.Config{Log: config.LogConf{Level: "warn"}}

	InitLog("grps-client")
	if logger.GetLevel() != log.WarnLevel {
		t.Fatalf("level = %v, want warn", logger.GetLevel())
	}

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	Info("hidden %d", 1)
	Warn("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info should be filtered: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown 2") {
		t.Fatalf("warn missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"DEBUG": log.DebugLevel,
		"info":  log.InfoLevel,
		"":      log.InfoLevel,
		"error": log.ErrorLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
