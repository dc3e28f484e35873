package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	t.Cleanup(Reset)
	Configure(Config{Short: 3 * time.Second})
	if Short() != 3*time.Second {
		t.Errorf("Short = %v", Short())
	}
	if Medium() != DefaultMedium || Upload() != DefaultUpload {
		t.Errorf("zero values must keep defaults: %+v", Current())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(Reset)
	t.Setenv("SIPELITA_TIMEOUT_UPLOAD", "2m")
	t.Setenv("SIPELITA_TIMEOUT_PING", "not-a-duration")
	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("configured = %d, want 1", n)
	}
	if Upload() != 2*time.Minute {
		t.Errorf("Upload = %v", Upload())
	}
	if Ping() != DefaultPing {
		t.Errorf("Ping = %v, want default", Ping())
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()
	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("err = %v", ctx.Err())
	}
}
