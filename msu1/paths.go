package msu1

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathResolver is the host-provided collaborator for locating the
// MSU1's data and track files on disk. Reading a directory or probing
// for file existence is file I/O, explicitly out of scope for this
// package (spec.md §1).
type PathResolver interface {
	// ReadFile returns the trimmed contents of the file at path, or
	// ok=false if it doesn't exist.
	ReadFile(path string) (contents string, ok bool)
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
}

// Paths is the outcome of applying the MSU1 file layout rule
// (spec.md §6) to one ROM.
type Paths struct {
	DataFilePath string
	trackBase    string
}

// TrackPath returns the path of the PCM file for the given track
// selector.
func (p Paths) TrackPath(track uint16) string {
	return fmt.Sprintf("%s-%d.pcm", p.trackBase, track)
}

// ResolvePaths computes the MSU1 data file and track base path for a
// ROM named romName (without extension) in romFolder, following
// spec.md §6: the data directory is romFolder unless a msu1.dir file
// there names a replacement; the data file is "<romName>.msu" if
// present, else "msu1.rom"; the track base pairs with whichever of
// those was found. Reports ok=false if neither data file exists.
func ResolvePaths(pr PathResolver, romFolder, romName string) (Paths, bool) {
	dir := romFolder
	if contents, ok := pr.ReadFile(filepath.Join(romFolder, "msu1.dir")); ok {
		dir = strings.TrimSpace(contents)
	}

	musPath := filepath.Join(dir, romName+".msu")
	if pr.Exists(musPath) {
		return Paths{DataFilePath: musPath, trackBase: filepath.Join(dir, romName)}, true
	}

	romPath := filepath.Join(dir, "msu1.rom")
	if pr.Exists(romPath) {
		return Paths{DataFilePath: romPath, trackBase: filepath.Join(dir, "track")}, true
	}

	return Paths{}, false
}
