package data

import (
	"fmt"
	"os"
	"strings"
	"time"

	"coinburst/internal/assets"

	"gopkg.in/yaml.v3"
)

// Burst is one row of the timeline table: Coins coins of Texture, each
// playing for Duration, started Interval apart beginning at Offset.
type Burst struct {
	Name     string        `yaml:"name"`
	Texture  string        `yaml:"texture"`
	Coins    int           `yaml:"coins"`
	Interval time.Duration `yaml:"interval"`
	Duration time.Duration `yaml:"duration"` // 0 = effect default
	Offset   time.Duration `yaml:"offset"`
}

type burstFile struct {
	Bursts []Burst `yaml:"bursts"`
}

// BurstTable keeps bursts in file order.
type BurstTable struct {
	bursts []Burst
}

func (t *BurstTable) All() []Burst { return t.bursts }

func (t *BurstTable) Count() int { return len(t.bursts) }

// Coins is the total coin count across all bursts.
func (t *BurstTable) Coins() int {
	n := 0
	for _, b := range t.bursts {
		n += b.Coins
	}
	return n
}

// Get returns the first burst with the given name.
func (t *BurstTable) Get(name string) (Burst, bool) {
	for _, b := range t.bursts {
		if b.Name == name {
			return b, true
		}
	}
	return Burst{}, false
}

// LoadBurstTable reads a burst table from a YAML file.
func LoadBurstTable(path string) (*BurstTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bursts: %w", err)
	}
	return ParseBurstTable(raw)
}

// ParseBurstTable decodes and validates a YAML burst table.
func ParseBurstTable(raw []byte) (*BurstTable, error) {
	var f burstFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse bursts: %w", err)
	}
	for i, b := range f.Bursts {
		if err := b.validate(); err != nil {
			label := b.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("burst %s: %w", label, err)
		}
	}
	return &BurstTable{bursts: f.Bursts}, nil
}

func (b Burst) validate() error {
	switch {
	case b.Texture == "":
		return fmt.Errorf("texture is required")
	case b.Coins < 0:
		return fmt.Errorf("coins must not be negative (got %d)", b.Coins)
	case b.Interval < 0 || b.Offset < 0:
		return fmt.Errorf("interval and offset must not be negative")
	case b.Duration < 0:
		return fmt.Errorf("duration must not be negative (got %v)", b.Duration)
	}
	return nil
}

// ResolveBurstTable loads the file named by COINBURST_BURSTS, or the
// embedded table when it is unset. The second value names the source.
func ResolveBurstTable() (*BurstTable, string, error) {
	if p := strings.TrimSpace(os.Getenv("COINBURST_BURSTS")); p != "" {
		t, err := LoadBurstTable(p)
		return t, p, err
	}
	t, err := ParseBurstTable(assets.Bursts())
	return t, "embedded", err
}
