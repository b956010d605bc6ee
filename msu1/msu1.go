// Package msu1 implements the MSU1 register gate (spec.md §4.8): the
// eight-byte memory-mapped interface by which a game commits a data
// pointer, selects and loads a PCM track, and reads back status and
// signature bytes. The PCM decoder and all file I/O are deliberately
// out of scope; this package drives two small collaborator interfaces
// instead (DataSource, TrackLoader) the way the CX4 package drives its
// Exec collaborator.
package msu1

import (
	"github.com/sneslab/cx4/memtype"
)

// PCMHeaderSize is the default byte offset into a track file at which
// playback starts, skipping the fixed PCM header the reference format
// prepends to every track.
const PCMHeaderSize = 8

// DefaultVolume is the playback volume at power-on.
const DefaultVolume = 100

// signature is the fixed ASCII string returned by reads to
// 0x2002-0x2007, used by games to detect an MSU1 is present.
const signature = "S-MSU1"

// DataSource is the host-provided collaborator for the MSU1's
// committed data file (spec.md §1, "file I/O for audio streams" is
// explicitly out of scope here).
type DataSource interface {
	// Size reports the data file's length in bytes.
	Size() uint32
	// ReadByte returns the byte at the given absolute offset. Callers
	// never ask for an offset >= Size().
	ReadByte(offset uint32) uint8
}

// TrackLoader attempts to (re)load the PCM track identified by track,
// starting playback startOffset bytes into the file, and reports
// whether the track file was found.
type TrackLoader interface {
	LoadTrack(track uint16, repeat bool, startOffset uint32) (found bool)
}

// Chip implements bus.Handler over the MSU1's eight registers
// (0x2000-0x2007). Callers pass register-relative addresses already
// resolved by the host's own mapping (the MSU1 window is fixed at
// 0x2000 on every bank that exposes it, unlike the CX4's bank-ranged
// windows).
type Chip struct {
	Volume      uint8
	TrackSelect uint16
	Repeat      bool
	Paused      bool
	AudioBusy   bool // Always false: audio mixing is out of scope.
	DataBusy    bool // Always false: the data file is never actually slow.
	TrackMissing bool

	tmpDataPointer uint32
	DataPointer    uint32

	source DataSource
	loader TrackLoader
}

// New returns a Chip at its power-on defaults, wired to source for
// data-file reads and loader for track (re)loads. Either may be nil,
// in which case the corresponding registers behave as if no ROM-side
// MSU1 resource was found (every track load sets the status byte's
// TrackMissing bit, data reads return 0).
func New(source DataSource, loader TrackLoader) *Chip {
	return &Chip{Volume: DefaultVolume, source: source, loader: loader}
}

// MemoryType implements bus.Handler.
func (c *Chip) MemoryType() memtype.Type {
	return memtype.Register
}

// Peek implements bus.Handler without the data register's
// post-increment side effect.
func (c *Chip) Peek(addr uint32) uint8 {
	if addr == 0x2001 {
		return 0
	}
	return c.Read(addr)
}

// Read implements bus.Handler over the MSU1's register window
// (spec.md §4.8).
func (c *Chip) Read(addr uint32) uint8 {
	switch addr {
	case 0x2000:
		var v uint8 = 0x01
		if c.DataBusy {
			v |= 0x80
		}
		if c.AudioBusy {
			v |= 0x40
		}
		if c.Repeat {
			v |= 0x20
		}
		if !c.Paused {
			v |= 0x10
		}
		if c.TrackMissing {
			v |= 0x08
		}
		return v

	case 0x2001:
		if c.DataBusy || c.source == nil || c.DataPointer >= c.source.Size() {
			return 0
		}
		b := c.source.ReadByte(c.DataPointer)
		c.DataPointer++
		return b

	case 0x2002, 0x2003, 0x2004, 0x2005, 0x2006, 0x2007:
		return signature[addr-0x2002]
	}
	return 0
}

// Write implements bus.Handler over the MSU1's register window
// (spec.md §4.8).
func (c *Chip) Write(addr uint32, value uint8) {
	switch addr {
	case 0x2000:
		c.tmpDataPointer = (c.tmpDataPointer &^ 0x000000FF) | uint32(value)
	case 0x2001:
		c.tmpDataPointer = (c.tmpDataPointer &^ 0x0000FF00) | uint32(value)<<8
	case 0x2002:
		c.tmpDataPointer = (c.tmpDataPointer &^ 0x00FF0000) | uint32(value)<<16
	case 0x2003:
		c.tmpDataPointer = (c.tmpDataPointer &^ 0xFF000000) | uint32(value)<<24
		c.DataPointer = c.tmpDataPointer

	case 0x2004:
		c.TrackSelect = (c.TrackSelect &^ 0x00FF) | uint16(value)
	case 0x2005:
		c.TrackSelect = (c.TrackSelect &^ 0xFF00) | uint16(value)<<8
		c.loadTrack(PCMHeaderSize)

	case 0x2006:
		c.Volume = value

	case 0x2007:
		if !c.AudioBusy {
			c.Repeat = value&0x02 != 0
			c.Paused = value&0x01 == 0
		}
	}
}

func (c *Chip) loadTrack(startOffset uint32) {
	if c.loader == nil {
		c.TrackMissing = true
		return
	}
	c.TrackMissing = !c.loader.LoadTrack(c.TrackSelect, c.Repeat, startOffset)
}
