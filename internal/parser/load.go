package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dgallion1/broodsire/internal/doctree"
)

// ReadSource reads the raw document bytes. A missing file yields a
// KindNotFound error and blank content a KindEmpty error.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Kind: KindNotFound, Path: path}
		}
		return nil, &SourceError{Kind: KindUnreadable, Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &SourceError{Kind: KindEmpty, Path: path}
	}
	return data, nil
}

// Decode parses document bytes with the parser chosen by filename.
// Any failure is reported as a KindUnreadable SourceError.
func Decode(data []byte, filename string) (*doctree.DocTree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &SourceError{Kind: KindEmpty, Path: filename}
	}
	p, err := ForFile(filename)
	if err != nil {
		return nil, &SourceError{Kind: KindUnreadable, Path: filename, Err: err}
	}
	tree, err := p.Parse(bytes.NewReader(data), filepath.Base(filename))
	if err != nil {
		return nil, &SourceError{Kind: KindUnreadable, Path: filename, Err: err}
	}
	if tree == nil || tree.Root == nil {
		return nil, &SourceError{Kind: KindUnreadable, Path: filename, Err: fmt.Errorf("no root topic")}
	}
	return tree, nil
}

// Load reads and parses the document at path in one step.
func Load(path string) (*doctree.DocTree, error) {
	data, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	tree, err := Decode(data, path)
	if err != nil {
		var se *SourceError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return tree, nil
}
