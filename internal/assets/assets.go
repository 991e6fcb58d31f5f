package assets

import (
	"embed"
	"io/fs"
)

//go:embed gfx/CoinsGold/*.png bursts.yaml coinburst.toml
var files embed.FS

// Embedded file names.
const (
	BurstsFile = "bursts.yaml"
	ConfigFile = "coinburst.toml"
)

// FS exposes the embedded sprite sheets and data tables. Paths are
// slash-separated and relative to this package (e.g. "gfx/CoinsGold/000.png").
func FS() fs.FS { return files }

func Bursts() []byte        { return mustRead(BurstsFile) }
func DefaultConfig() []byte { return mustRead(ConfigFile) }

func mustRead(name string) []byte {
	data, err := files.ReadFile(name)
	if err != nil {
		panic("assets: read " + name + ": " + err.Error())
	}
	return data
}
