package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"coinburst/internal/assets"
)

func TestEmbeddedBurstTable(t *testing.T) {
	tbl, err := ParseBurstTable(assets.Bursts())
	if err != nil {
		t.Fatalf("embedded table does not parse: %v", err)
	}
	b, ok := tbl.Get("gold")
	if !ok {
		t.Fatal("gold burst missing")
	}
	want := Burst{Name: "gold", Texture: "CoinsGold", Coins: 80, Interval: 100 * time.Millisecond, Duration: 6 * time.Second}
	if b != want {
		t.Fatalf("got %+v, want %+v", b, want)
	}
	if tbl.Count() != 1 || tbl.Coins() != 80 {
		t.Fatalf("count=%d coins=%d", tbl.Count(), tbl.Coins())
	}
}

func TestParseBurstTableKeepsOrder(t *testing.T) {
	tbl, err := ParseBurstTable([]byte(`
bursts:
  - {name: a, texture: CoinsGold, coins: 2, interval: 50ms}
  - {name: b, texture: CoinsGold, coins: 3, interval: 1s, offset: 2s, duration: 500ms}
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	all := tbl.All()
	if len(all) != 2 || all[0].Name != "a" || all[1].Offset != 2*time.Second || all[1].Duration != 500*time.Millisecond {
		t.Fatalf("unexpected table %+v", all)
	}
	if all[0].Duration != 0 {
		t.Fatal("omitted duration should stay zero so the effect default applies")
	}
}

func TestParseBurstTableErrors(t *testing.T) {
	cases := map[string]string{
		"yaml":       "bursts: [",
		"texture":    "bursts: [{name: x, coins: 1}]",
		"coins":      "bursts: [{name: x, texture: T, coins: -1}]",
		"interval":   "bursts: [{texture: T, coins: 1, interval: -5ms}]",
		"duration":   "bursts: [{texture: T, coins: 1, duration: -1s}]",
		"bad string": "bursts: [{texture: T, coins: 1, interval: soon}]",
	}
	for name, src := range cases {
		if _, err := ParseBurstTable([]byte(src)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadBurstTable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bursts.yaml")
	if err := os.WriteFile(p, assets.Bursts(), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBurstTable(p); err != nil {
		t.Fatalf("LoadBurstTable failed: %v", err)
	}
	if _, err := LoadBurstTable(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestResolveBurstTable(t *testing.T) {
	t.Setenv("COINBURST_BURSTS", "")
	tbl, src, err := ResolveBurstTable()
	if err != nil || src != "embedded" || tbl.Coins() != 80 {
		t.Fatalf("src=%s err=%v", src, err)
	}

	p := filepath.Join(t.TempDir(), "b.yaml")
	if err := os.WriteFile(p, []byte("bursts:\n  - {name: tiny, texture: CoinsGold, coins: 3, interval: 10ms}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COINBURST_BURSTS", p)
	tbl, src, err = ResolveBurstTable()
	if err != nil || src != p || tbl.Coins() != 3 {
		t.Fatalf("src=%s err=%v", src, err)
	}
}
