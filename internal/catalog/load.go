package catalog

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/gzip"
	ico "github.com/sergeymakinen/go-ico"

	"github.com/cpucat/cpucat/internal/models"
)

// Format is the image encoding handed to the tray.
type Format int

const (
	FormatPNG Format = iota
	FormatICO
)

// Options controls how frames are prepared at load time.
type Options struct {
	// FrameSize scales every frame to a square of this many pixels.
	// Zero keeps the bundled size.
	FrameSize int

	// Format is the encoding expected by the tray implementation.
	Format Format

	// TemplateAuto synthesises ThemeAuto frames flagged as templates for
	// every themed family.
	TemplateAuto bool

	// SystemTheme resolves ThemeAuto when a family has no Auto frames.
	SystemTheme func() models.Theme
}

type frameKey struct {
	icon  string
	theme models.Theme
}

type indexedFrame struct {
	index int
	data  []byte
}

// Load reads a gzip-compressed tar of PNG frames.
//
// Entries are named <icon>/<theme>/<n>.png for themed families and
// <icon>/<n>.png for single-variant ones; frames play in ascending n.
func Load(r io.Reader, opts Options) (*Catalog, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress icons: %w", err)
	}
	defer zr.Close()

	raw := make(map[frameKey][]indexedFrame)
	themed := make(map[string]bool)

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read icon archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || path.Ext(hdr.Name) != ".png" {
			continue
		}

		key, index, isThemed, ok := parseEntryName(hdr.Name)
		if !ok {
			slog.Debug("Skipping icon archive entry", "component", "catalog", "name", hdr.Name)
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}
		data, err = prepareFrame(data, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare %s: %w", hdr.Name, err)
		}

		raw[key] = append(raw[key], indexedFrame{index: index, data: data})
		if isThemed {
			themed[key.icon] = true
		}
	}

	sets := make(map[string]Set)
	for key, frames := range raw {
		sort.Slice(frames, func(i, j int) bool { return frames[i].index < frames[j].index })

		set, ok := sets[key.icon]
		if !ok {
			set = Set{Themed: themed[key.icon], Frames: map[models.Theme][]Frame{}}
		}
		seq := make([]Frame, len(frames))
		for i, f := range frames {
			seq[i] = Frame{Data: f.data}
		}
		set.Frames[key.theme] = seq
		sets[key.icon] = set
	}

	return FromSets(sets, opts)
}

// parseEntryName splits an archive path into its family, theme and frame index.
func parseEntryName(name string) (frameKey, int, bool, bool) {
	parts := strings.Split(strings.TrimPrefix(path.Clean(name), "./"), "/")

	var icon, themeName, file string
	switch len(parts) {
	case 2:
		icon, file = parts[0], parts[1]
	case 3:
		icon, themeName, file = parts[0], parts[1], parts[2]
	default:
		return frameKey{}, 0, false, false
	}

	index, err := strconv.Atoi(strings.TrimSuffix(file, ".png"))
	if err != nil || icon == "" {
		return frameKey{}, 0, false, false
	}

	if themeName == "" {
		return frameKey{icon: icon, theme: models.ThemeDark}, index, false, true
	}

	theme, err := models.ParseTheme(themeName)
	if err != nil || theme == models.ThemeAuto {
		return frameKey{}, 0, false, false
	}
	return frameKey{icon: icon, theme: theme}, index, true, true
}

// prepareFrame resizes and re-encodes a PNG frame for the tray. Windows
// tray icons are loaded from ICO data.
func prepareFrame(data []byte, opts Options) ([]byte, error) {
	if opts.FrameSize <= 0 && opts.Format == FormatPNG {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if opts.FrameSize > 0 {
		b := img.Bounds()
		if b.Dx() != opts.FrameSize || b.Dy() != opts.FrameSize {
			img = imaging.Resize(img, opts.FrameSize, opts.FrameSize, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if opts.Format == FormatICO {
		err = ico.Encode(&buf, img)
	} else {
		err = imaging.Encode(&buf, img, imaging.PNG)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
