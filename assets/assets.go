// Package assets loads the optional asset directory and provides the
// built-in fallbacks used when it is absent: synthesized sound cues and a
// generated window icon.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
)

// File names looked up in the asset directory.
const (
	FontFile     = "PressStart.ttf"
	LeftHitFile  = "click_high.wav"
	RightHitFile = "click_low.wav"
	ScoreFile    = "score.wav"
	IconFile     = "icon.png"
)

// Bundle holds whatever the asset directory provided. Nil fields mean the
// built-in fallback should be used.
type Bundle struct {
	Font     []byte
	LeftHit  []byte // WAV
	RightHit []byte // WAV
	Score    []byte // WAV
	Icon     image.Image

	Missing []string // files that were not found
}

// Load reads the asset directory. An empty dir returns an empty bundle. The
// directory itself must exist; individual files may be missing.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{}
	if dir == "" {
		return b, nil
	}
	return b, b.load(os.DirFS(dir), dir)
}

func (b *Bundle) load(fsys fs.FS, dir string) error {
	if _, err := fs.Stat(fsys, "."); err != nil {
		return fmt.Errorf("asset dir %s: %w", dir, err)
	}

	files := []struct {
		name string
		dst  *[]byte
	}{
		{FontFile, &b.Font},
		{LeftHitFile, &b.LeftHit},
		{RightHitFile, &b.RightHit},
		{ScoreFile, &b.Score},
	}
	for _, f := range files {
		data, err := b.read(fsys, f.name)
		if err != nil {
			return fmt.Errorf("asset %s: %w", filepath.Join(dir, f.name), err)
		}
		*f.dst = data
	}

	data, err := b.read(fsys, IconFile)
	if err != nil {
		return fmt.Errorf("asset %s: %w", filepath.Join(dir, IconFile), err)
	}
	if data != nil {
		icon, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode %s: %w", filepath.Join(dir, IconFile), err)
		}
		b.Icon = icon
	}
	return nil
}

// read returns nil data for a missing file and records it.
func (b *Bundle) read(fsys fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		b.Missing = append(b.Missing, name)
		return nil, nil
	}
	return data, err
}
