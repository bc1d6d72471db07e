package timpack

import (
	"database/sql"
	"fmt"
	"image"
	"path/filepath"

	"github.com/bodgit/timpack/tim"
	_ "github.com/mattn/go-sqlite3"
)

const (
	kindCLUT  = "clut"
	kindPixel = "pixel"
)

// Registry is a sqlite database recording the VRAM placement of every packed
// TIM file so that blocks which overwrite each other can be found.
type Registry struct {
	db *sql.DB
}

// Block is a registered block. Rect is in 16-bit VRAM units, so a 4-bit
// pixel block is a quarter of its width in pixels.
type Block struct {
	Path   string
	Kind   string
	Format tim.Format
	Rect   image.Rectangle
}

func (b Block) String() string {
	return fmt.Sprintf("%s %s block %v", b.Path, b.Kind, b.Rect)
}

// Overlap is a pair of registered blocks that share VRAM.
type Overlap struct {
	A, B Block
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s and %s", o.A, o.B)
}

// NewRegistry opens, creating if necessary, the registry in file.
func NewRegistry(file string) (*Registry, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, format INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS block (id INTEGER PRIMARY KEY NOT NULL, texture_id INTEGER NOT NULL, kind TEXT NOT NULL, x INTEGER NOT NULL, y INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, FOREIGN KEY(texture_id) REFERENCES texture(id) ON DELETE CASCADE)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Registry{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

func vramRect(h tim.BlockHeader, unitsPerWord int) image.Rectangle {
	w := (int(h.Width) + unitsPerWord - 1) / unitsPerWord
	return image.Rect(int(h.X), int(h.Y), int(h.X)+w, int(h.Y)+int(h.Height))
}

func blocks(f *tim.File) map[string]image.Rectangle {
	m := make(map[string]image.Rectangle)
	if f.CLUT != nil {
		m[kindCLUT] = vramRect(f.CLUT.Header, 1)
	}
	if f.Pixels != nil {
		switch f.Format() {
		case tim.Format4Bit:
			m[kindPixel] = vramRect(f.Pixels.Header, 4)
		case tim.Format8Bit:
			m[kindPixel] = vramRect(f.Pixels.Header, 2)
		default:
			m[kindPixel] = vramRect(f.Pixels.Header, 1)
		}
	}
	return m
}

// Register records the blocks of f under path, replacing anything previously
// recorded for the same path.
func (r *Registry) Register(path string, f *tim.File) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM texture WHERE path = ?", abs); err != nil {
		return err
	}

	result, err := tx.Exec("INSERT INTO texture (path, format) VALUES (?, ?)", abs, int(f.Format()))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	m := blocks(f)
	for _, kind := range []string{kindCLUT, kindPixel} {
		rect, ok := m[kind]
		if !ok {
			continue
		}
		if _, err := tx.Exec("INSERT INTO block (texture_id, kind, x, y, width, height) VALUES (?, ?, ?, ?, ?, ?)", id, kind, rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Unregister forgets everything recorded for path.
func (r *Registry) Unregister(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, err = r.db.Exec("DELETE FROM texture WHERE path = ?", abs)
	return err
}

type scanner interface {
	Scan(...interface{}) error
}

func scanBlock(s scanner, dest *Block, extra ...interface{}) error {
	var format, x, y, w, h int
	if err := s.Scan(append([]interface{}{&dest.Path, &format, &dest.Kind, &x, &y, &w, &h}, extra...)...); err != nil {
		return err
	}
	dest.Format = tim.Format(format)
	dest.Rect = image.Rect(x, y, x+w, y+h)
	return nil
}

// Blocks returns every registered block ordered by path.
func (r *Registry) Blocks() ([]Block, error) {
	rows, err := r.db.Query("SELECT t.path, t.format, b.kind, b.x, b.y, b.width, b.height FROM block AS b JOIN texture AS t ON b.texture_id = t.id ORDER BY t.path, b.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Block
	for rows.Next() {
		var b Block
		if err := scanBlock(rows, &b); err != nil {
			return nil, err
		}
		result = append(result, b)
	}

	return result, rows.Err()
}

// Overlaps returns every pair of registered blocks that share VRAM,
// including the CLUT and pixel blocks of the same file.
func (r *Registry) Overlaps() ([]Overlap, error) {
	rows, err := r.db.Query(`SELECT ta.path, ta.format, a.kind, a.x, a.y, a.width, a.height, tb.path, tb.format, b.kind, b.x, b.y, b.width, b.height
		FROM block AS a
		JOIN block AS b ON a.id < b.id
		JOIN texture AS ta ON a.texture_id = ta.id
		JOIN texture AS tb ON b.texture_id = tb.id
		WHERE a.x < b.x + b.width AND b.x < a.x + a.width AND a.y < b.y + b.height AND b.y < a.y + a.height
		ORDER BY a.id, b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Overlap
	for rows.Next() {
		var o Overlap
		var format, x, y, w, h int
		if err := scanBlock(rows, &o.A, &o.B.Path, &format, &o.B.Kind, &x, &y, &w, &h); err != nil {
			return nil, err
		}
		o.B.Format = tim.Format(format)
		o.B.Rect = image.Rect(x, y, x+w, y+h)
		result = append(result, o)
	}

	return result, rows.Err()
}
