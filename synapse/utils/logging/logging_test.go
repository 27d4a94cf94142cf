package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestInitLoggerWritesFiles(t *testing.T) {
	dir := t.TempDir()
	if err := InitLogger(dir); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	defer func() {
		Sync()
		AppLogger, TimerLogger = zap.NewNop(), zap.NewNop()
		RequestLogger, ErrorLogger = zap.NewNop(), zap.NewNop()
	}()

	AppLogger.Info("hello")
	ctx := WithTraceID(context.Background(), "run-1")
	LogDuration(ctx, "TestInitLoggerWritesFiles")()
	Sync()

	for _, name := range []string{"app.log", "timer.log"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
