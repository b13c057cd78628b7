package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxChars != 1000 {
		t.Errorf("expected default max-chars 1000, got %d", cfg.MaxChars)
	}
	if cfg.Source != DefaultSource {
		t.Errorf("expected default source %q, got %q", DefaultSource, cfg.Source)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Input = "in.jsonl"
	valid.Output = "out.jsonl"
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input", func(c *Config) { c.Input = "" }},
		{"missing output", func(c *Config) { c.Output = "" }},
		{"zero max-chars", func(c *Config) { c.MaxChars = 0 }},
		{"negative max-chars", func(c *Config) { c.MaxChars = -5 }},
		{"empty source", func(c *Config) { c.Source = "" }},
	}
	for _, c := range cases {
		cfg := valid
		c.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
