package logger

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		log, err := New(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		log.Info("hello", String("k", "v"), Int("n", 1))
	})

	t.Run("console format", func(t *testing.T) {
		log, err := New(&Config{Level: LevelDebug, Format: FormatConsole})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		log.Debug("debug line", Err(errors.New("boom")))
	})

	t.Run("invalid level", func(t *testing.T) {
		if _, err := New(&Config{Level: "loud"}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestWith(t *testing.T) {
	log := MustNew(&Config{})
	child := log.With(String("component", "chain"))
	child.Info("派生记录器")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("ignored")
	log.Error("ignored", Any("k", 1))
	if err := log.Sync(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if log.With(String("a", "b")) == nil {
		t.Error("expected logger")
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	c := &Config{}
	c.ApplyDefaults()
	if c.Level != LevelInfo || c.Format != FormatJSON {
		t.Errorf("unexpected defaults: %+v", c)
	}
}
