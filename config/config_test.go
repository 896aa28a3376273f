package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_Formats(t *testing.T) {
	cases := map[string]string{
		"c.json": `{"interactive": true, "zoom_step": 2, "theme": "dark", "cascade": "/x/facefinder"}`,
		"c.yaml": "interactive: true\nzoom_step: 2\ntheme: dark\ncascade: /x/facefinder\n",
		"c.yml":  "interactive: true\nzoom_step: 2\ntheme: dark\ncascade: /x/facefinder\n",
		"c.toml": "interactive = true\nzoom_step = 2.0\ntheme = \"dark\"\ncascade = \"/x/facefinder\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !cfg.Interactive || cfg.ZoomStep != 2 || cfg.Theme != "dark" || cfg.Cascade != "/x/facefinder" {
				t.Fatalf("unexpected config %+v", cfg)
			}
			// Unset fields keep their defaults.
			if cfg.PollIntervalMS != 50 || cfg.MaxZoom != 64 {
				t.Fatalf("defaults lost: %+v", cfg)
			}
		})
	}
}

func TestLoad_DecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(path, []byte("{not json"), 0o644)
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("expected defaults alongside error")
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	if _, err := Load("settings.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"rt.json", "rt.yaml", "rt.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := DefaultConfig()
			want.Debug = true
			want.LogLevel = "debug"
			want.MinZoom = 0.5
			want.Theme = "dark"
			if err := want.Save(path); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if *got != *want {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{LogLevel: "LOUD", PollIntervalMS: -1, ZoomStep: 0.5, MinZoom: 2, MaxZoom: 1, Theme: "neon", DownloadTimeoutS: -3}
	if err := c.Validate(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for log level and theme, got %v", err)
	}
	if c.LogLevel != "info" || c.PollIntervalMS != 50 || c.ZoomStep != 1.25 || c.Theme != "light" || c.DownloadTimeoutS != 0 {
		t.Fatalf("unexpected clamp result %+v", c)
	}
	if c.MaxZoom < c.MinZoom {
		t.Fatalf("max zoom below min: %+v", c)
	}
	c = &Config{LogLevel: "WARN", PollIntervalMS: 5000, Theme: "dark"}
	if err := c.Validate(); err != nil {
		t.Fatalf("numeric clamps must not report an error: %v", err)
	}
	if c.LogLevel != "warn" || c.PollIntervalMS != 1000 {
		t.Fatalf("unexpected clamp result %+v", c)
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
}

func TestLoad_InvalidThemeReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("theme: neon\nzoom_step: 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if cfg.Theme != "light" || cfg.ZoomStep != 2 {
		t.Fatalf("expected normalized config, got %+v", cfg)
	}
}

func TestSave_RejectsInvalidValue(t *testing.T) {
	c := DefaultConfig()
	c.LogLevel = "verbose"
	path := filepath.Join(t.TempDir(), "c.json")
	if err := c.Save(path); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("nothing should be written, stat err = %v", err)
	}
}
