package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type testConfig struct {
	Addr  string `yaml:"addr"`
	Slots int    `yaml:"slots"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		var cfg testConfig
		err := UnmarshalStrict([]byte("addr: \":8000\"\nslots: 4\n"), &cfg)
		if err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if cfg.Addr != ":8000" || cfg.Slots != 4 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		var cfg testConfig
		err := UnmarshalStrict([]byte("addr: \":8000\"\nbogus: 1\n"), &cfg)
		if err == nil {
			t.Fatal("UnmarshalStrict() accepted unknown field")
		}
	})

	t.Run("empty data", func(t *testing.T) {
		var cfg testConfig
		if err := UnmarshalStrict(nil, &cfg); !errors.Is(err, ErrNilData) {
			t.Errorf("UnmarshalStrict() error = %v, want ErrNilData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		if err := UnmarshalStrict([]byte("a: 1"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("UnmarshalStrict() error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		var cfg testConfig
		big := []byte("addr: " + strings.Repeat("x", MaxInputSize))
		if err := UnmarshalStrict(big, &cfg); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
		}
	})
}

func TestMarshal(t *testing.T) {
	out, err := Marshal(testConfig{Addr: ":9000", Slots: 2})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), ":9000") {
		t.Errorf("Marshal() = %q", out)
	}
}
