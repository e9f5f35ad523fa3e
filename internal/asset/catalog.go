// Package asset loads the text-art sprites drawn by the renderer.
// Sprites ship embedded in the binary and can be overridden per name from a
// directory of .txt files.
package asset

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//go:embed sprites/*.txt
var embedded embed.FS

// Transparent is the sprite rune that leaves the underlying cell untouched.
const Transparent = ' '

// Sprite is a block of text art. Rows may differ in length; Width is the
// longest row.
type Sprite struct {
	Name   string
	Lines  [][]rune
	Width  int
	Height int
}

// At returns the rune at column x, row y, or Transparent outside the art.
func (s *Sprite) At(x, y int) rune {
	if y < 0 || y >= len(s.Lines) {
		return Transparent
	}
	row := s.Lines[y]
	if x < 0 || x >= len(row) {
		return Transparent
	}
	return row[x]
}

// Parse builds a sprite from text. Trailing blank lines are dropped.
func Parse(name, text string) *Sprite {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")

	s := &Sprite{Name: name}
	if text == "" {
		return s
	}
	for _, line := range strings.Split(text, "\n") {
		row := []rune(strings.TrimRight(line, " \t"))
		s.Lines = append(s.Lines, row)
		s.Width = max(s.Width, len(row))
	}
	s.Height = len(s.Lines)
	return s
}

// Catalog holds sprites by name. It is safe for concurrent use, so one
// catalog can serve every SSH session.
type Catalog struct {
	sprites map[string]*Sprite
	logger  *log.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// Load builds a catalog from the embedded sprites, then overlays any .txt
// files found in dir. An empty dir skips the overlay. A dir that cannot be
// read is logged and ignored.
func Load(dir string, logger *log.Logger) (*Catalog, error) {
	if logger == nil {
		return nil, fmt.Errorf("asset: logger is required")
	}

	c := &Catalog{
		sprites: make(map[string]*Sprite),
		logger:  logger,
		warned:  make(map[string]bool),
	}

	sub, err := fs.Sub(embedded, "sprites")
	if err != nil {
		return nil, fmt.Errorf("asset: embedded sprites: %w", err)
	}
	if _, err := c.loadFS(sub); err != nil {
		return nil, fmt.Errorf("asset: embedded sprites: %w", err)
	}

	if dir != "" {
		n, err := c.loadFS(os.DirFS(dir))
		if err != nil {
			logger.Warn("sprite override directory unreadable", "dir", dir, "err", err)
		} else {
			logger.Debug("loaded sprite overrides", "dir", dir, "count", n)
		}
	}

	return c, nil
}

// loadFS reads every top-level .txt file in fsys into the catalog.
func (c *Catalog) loadFS(fsys fs.FS) (int, error) {
	if _, err := fs.Stat(fsys, "."); err != nil {
		return 0, err
	}
	matches, err := fs.Glob(fsys, "*.txt")
	if err != nil {
		return 0, err
	}

	loaded := 0
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			c.logger.Warn("failed to read sprite", "file", name, "err", err)
			continue
		}
		key := strings.TrimSuffix(path.Base(name), ".txt")
		c.sprites[key] = Parse(key, string(data))
		loaded++
	}
	return loaded, nil
}

// Sprite returns the named sprite, or nil if it does not exist.
// The first miss for each name is logged at warn level.
func (c *Catalog) Sprite(name string) *Sprite {
	if s, ok := c.sprites[name]; ok {
		return s
	}

	c.mu.Lock()
	first := !c.warned[name]
	c.warned[name] = true
	c.mu.Unlock()

	if first {
		c.logger.Warn("missing sprite, drawing placeholder", "sprite", name)
	}
	return nil
}

// Has reports whether the named sprite exists without logging a miss.
func (c *Catalog) Has(name string) bool {
	_, ok := c.sprites[name]
	return ok
}

// Names returns all sprite names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sprites))
	for name := range c.sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
