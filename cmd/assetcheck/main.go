// Command assetcheck validates the sprite sheets a config refers to: every
// frame must exist, carry a PNG signature and decode.
//
//	assetcheck                      # embedded config and assets
//	assetcheck -config my.toml -dir ./art
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"coinburst/internal/assets"
	"coinburst/internal/config"
	"coinburst/internal/game/textures"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default: embedded)")
	dir := flag.String("dir", "", "asset root on disk (default: embedded)")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assetcheck: %v\n", err)
		os.Exit(2)
	}
	fsys := assets.FS()
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}

	var sheets []textures.Sheet
	for _, s := range cfg.Assets.Sheets {
		sheets = append(sheets, textures.Sheet{Base: s.Base, Dir: s.Dir, Frames: s.Frames})
	}
	if bad := check(os.Stdout, fsys, textures.SheetRequests(sheets...)); bad > 0 {
		fmt.Printf("%d frame(s) failed\n", bad)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Embedded()
	}
	return config.Load(path)
}

// check reports on every request and returns how many failed.
func check(w io.Writer, fsys fs.FS, reqs []textures.Request) int {
	bad := 0
	for _, r := range reqs {
		head, err := readHead(fsys, r.Path, 16)
		if err != nil {
			fmt.Fprintf(w, "FAIL %-16s %s: %v\n", r.Name, r.Path, err)
			bad++
			continue
		}
		if kind := sniff(head); kind != "PNG" {
			fmt.Fprintf(w, "FAIL %-16s %s: signature suggests %s\n", r.Name, r.Path, kind)
			bad++
			continue
		}
		img, err := textures.Decode(fsys, r.Path)
		if err != nil {
			fmt.Fprintf(w, "FAIL %-16s %v\n", r.Name, err)
			bad++
			continue
		}
		b := img.Bounds()
		fmt.Fprintf(w, "ok   %-16s %s %dx%d\n", r.Name, r.Path, b.Dx(), b.Dy())
	}
	return bad
}

func readHead(fsys fs.FS, name string, n int) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, n)
	m, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:m], nil
}

// sniff names the format suggested by the first bytes of a file.
func sniff(b []byte) string {
	switch {
	case bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case bytes.HasPrefix(b, []byte{0xFF, 0xD8}):
		return "JPEG"
	case bytes.HasPrefix(b, []byte("BM")):
		return "BMP"
	case bytes.HasPrefix(b, []byte("GIF")):
		return "GIF"
	}
	return "unknown format"
}
