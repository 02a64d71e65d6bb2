package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/qasemB/blog-back-end/internal/models"
)

// Document is the complete persisted state: one JSON object with an array
// per collection. The file layout is an external contract, other tools read
// and edit db.json directly.
type Document struct {
	Users      []models.User     `json:"users"`
	Categories []models.Category `json:"categories"`
	Articles   []models.Article  `json:"articles"`
	Comments   []models.Comment  `json:"comments"`
}

// Store keeps an in-memory mirror of the JSON document and rewrites the
// whole file on every mutation. One mutex serializes all access, so two
// concurrent mutations can never lose each other's update.
type Store struct {
	path string

	mu        sync.Mutex
	doc       Document
	lastFlush time.Time
}

// Open loads the document at path, creating the file with empty collections
// if it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.doc = emptyDocument()
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, err
	}
	normalize(&s.doc)
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Reload replaces the in-memory mirror with whatever is on disk. Used when
// the backing file was edited outside the process.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	normalize(&doc)

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// flushLocked rewrites the whole file. Callers must hold s.mu. The write
// goes to a temp file in the same directory and is renamed over the target,
// so a crash mid-write never corrupts the document.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}

	s.lastFlush = time.Now()
	return nil
}

// sinceFlush reports how long ago this process last wrote the file. The
// watcher uses it to tell its own flushes apart from external edits.
func (s *Store) sinceFlush() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastFlush)
}

func emptyDocument() Document {
	return Document{
		Users:      []models.User{},
		Categories: []models.Category{},
		Articles:   []models.Article{},
		Comments:   []models.Comment{},
	}
}

// normalize replaces nil collections with empty slices so a hand-edited
// file with missing keys still serializes every top-level array.
func normalize(doc *Document) {
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Categories == nil {
		doc.Categories = []models.Category{}
	}
	if doc.Articles == nil {
		doc.Articles = []models.Article{}
	}
	if doc.Comments == nil {
		doc.Comments = []models.Comment{}
	}
}

// Users returns the typed view over the users collection.
func (s *Store) Users() *Collection[models.User] {
	return &Collection[models.User]{store: s, slice: func(d *Document) *[]models.User { return &d.Users }}
}

// Categories returns the typed view over the categories collection.
func (s *Store) Categories() *Collection[models.Category] {
	return &Collection[models.Category]{store: s, slice: func(d *Document) *[]models.Category { return &d.Categories }}
}

// Articles returns the typed view over the articles collection.
func (s *Store) Articles() *Collection[models.Article] {
	return &Collection[models.Article]{store: s, slice: func(d *Document) *[]models.Article { return &d.Articles }}
}

// Comments returns the typed view over the comments collection.
func (s *Store) Comments() *Collection[models.Comment] {
	return &Collection[models.Comment]{store: s, slice: func(d *Document) *[]models.Comment { return &d.Comments }}
}
