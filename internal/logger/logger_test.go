package logger

import "testing"

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production", "staging"} {
		t.Run(env, func(t *testing.T) {
			log, err := New(env)
			if err != nil {
				t.Fatalf("New(%q): %v", env, err)
			}
			if log == nil {
				t.Fatal("expected a logger")
			}
			log.Info("logger smoke test")
		})
	}
}

func TestNewWithDefaults(t *testing.T) {
	if log := NewWithDefaults(); log == nil {
		t.Fatal("expected a logger")
	}
}
