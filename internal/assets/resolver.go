// Package assets maps background and sprite references from a story to
// files under the assets directory.
package assets

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Default extensions tried when a reference has none.
var (
	ImageExtensions = []string{".png", ".jpg", ".jpeg"}
)

var (
	// ErrRemote is returned for references that are URLs rather than files.
	ErrRemote = errors.New("asset is a remote reference")
	// ErrInvalidRef is returned for empty references and references that
	// escape the base directory.
	ErrInvalidRef = errors.New("invalid asset reference")
	// ErrNotFound is returned when no candidate file exists.
	ErrNotFound = errors.New("asset not found")
)

// Resolver resolves references relative to BaseDir.
type Resolver struct {
	BaseDir string
}

// NewResolver returns a Resolver rooted at dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{BaseDir: dir}
}

// IsRemote reports whether ref is an absolute http(s) or data URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "data":
		return true
	}
	return false
}

// Candidates validates ref and returns the paths to try, in order: the
// reference itself, then the reference with each extension appended.
func (r *Resolver) Candidates(ref string, exts []string) ([]string, error) {
	if IsRemote(ref) {
		return nil, ErrRemote
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrInvalidRef
	}

	clean := filepath.Clean(filepath.FromSlash(ref))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, ErrInvalidRef
	}
	resolved := filepath.Join(r.BaseDir, clean)
	rel, err := filepath.Rel(r.BaseDir, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, ErrInvalidRef
	}

	candidates := []string{resolved}
	if filepath.Ext(clean) == "" {
		for _, ext := range exts {
			candidates = append(candidates, resolved+ext)
		}
	}
	return candidates, nil
}

// Resolve returns the first existing regular file for ref.
func (r *Resolver) Resolve(ref string, exts []string) (string, error) {
	candidates, err := r.Candidates(ref, exts)
	if err != nil {
		return "", err
	}
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		return p, nil
	}
	return "", ErrNotFound
}

// SpriteRef names the sprite for a character in an emotion, relative to
// the assets directory.
func SpriteRef(name, emotion string) string {
	if emotion == "" {
		emotion = "neutral"
	}
	return "characters/" + strings.ToLower(name) + "_" + strings.ToLower(emotion)
}
