// Package addin holds the entities of the locate and activate flow: the
// query, the candidate files found on disk, the add-ins an office
// application reports, and the outcome returned to callers.
package addin

import (
	"path/filepath"
	"strings"
	"time"
)

// DefaultExtension is the file extension of Excel add-in packages.
const DefaultExtension = ".xlam"

// Platform is an operating system identifier as reported by runtime.GOOS.
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformDarwin  Platform = "darwin"
)

// Supported reports whether an automation channel exists for the platform.
func (p Platform) Supported() bool {
	return p == PlatformWindows || p == PlatformDarwin
}

// Candidate is an add-in file discovered in the add-ins directory.
type Candidate struct {
	Path    string
	Created time.Time
}

// Name returns the file's base name.
func (c Candidate) Name() string {
	return filepath.Base(c.Path)
}

// Entry is one add-in registered in the office application.
type Entry struct {
	Name      string
	FullName  string
	Installed bool
}

// MatchField selects which entry attribute is compared with the add-in file.
type MatchField string

const (
	// MatchName compares the entry name with the file's base name.
	MatchName MatchField = "name"
	// MatchFullName compares the entry's full path with the file path.
	MatchFullName MatchField = "full_name"
)

// MatchPolicy controls how query fragments and registered add-ins are
// compared with files on disk.
type MatchPolicy struct {
	CaseSensitive bool
	Field         MatchField
	Extension     string
}

// DefaultMatchPolicy matches by base name, ignoring case, on .xlam files.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{
		CaseSensitive: false,
		Field:         MatchName,
		Extension:     DefaultExtension,
	}
}

// MatchesFile reports whether a directory entry name is an add-in file whose
// stem (the name without the extension) contains query, like the glob
// *query*.xlam. The extension is always compared without case.
func (p MatchPolicy) MatchesFile(fileName, query string) bool {
	ext := p.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	fileExt := filepath.Ext(fileName)
	if !strings.EqualFold(fileExt, ext) {
		return false
	}
	stem := strings.TrimSuffix(fileName, fileExt)
	if p.CaseSensitive {
		return strings.Contains(stem, query)
	}
	return strings.Contains(strings.ToLower(stem), strings.ToLower(query))
}

// MatchesEntry reports whether a registered add-in corresponds to the file
// at path.
func (p MatchPolicy) MatchesEntry(entry Entry, path string) bool {
	want := filepath.Base(path)
	got := entry.Name
	if p.Field == MatchFullName {
		want = filepath.Clean(path)
		if entry.FullName == "" {
			return false
		}
		got = filepath.Clean(entry.FullName)
	}
	if p.CaseSensitive {
		return got == want
	}
	return strings.EqualFold(got, want)
}

// FindEntry returns the first entry matching path.
func (p MatchPolicy) FindEntry(entries []Entry, path string) (Entry, bool) {
	for _, entry := range entries {
		if p.MatchesEntry(entry, path) {
			return entry, true
		}
	}
	return Entry{}, false
}
