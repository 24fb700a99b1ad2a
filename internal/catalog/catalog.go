// Package catalog maps icon families and themes to their animation frames.
//
// A catalog is built once at startup from the bundled asset blob and is
// read-only afterwards, so it is safe for concurrent use without locking.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/cpucat/cpucat/internal/models"
)

const (
	// DefaultIcon is used when no valid icon preference exists.
	DefaultIcon = "cat"

	// SleepIcon is the idle variant of DefaultIcon. It is never offered to
	// the user.
	SleepIcon = "sleep"
)

var (
	ErrEmptyCatalog = errors.New("icon catalog is empty")
	ErrUnknownIcon  = errors.New("unknown icon")
)

// Frame is one animation frame in the encoding the tray expects.
type Frame struct {
	Data []byte
	// Template frames are tinted by the OS to match the menu bar.
	Template bool
}

// Set is the frames of one icon family. Unthemed sets keep their single
// sequence under ThemeDark.
type Set struct {
	Themed bool
	Frames map[models.Theme][]Frame
}

// Catalog is the immutable icon lookup table.
type Catalog struct {
	sets        map[string]Set
	systemTheme func() models.Theme
}

// FromSets builds a catalog from already decoded sets. Empty sequences are
// dropped; a family left without any sequence is an error.
func FromSets(sets map[string]Set, opts Options) (*Catalog, error) {
	c := &Catalog{
		sets:        make(map[string]Set, len(sets)),
		systemTheme: opts.SystemTheme,
	}

	for name, set := range sets {
		frames := make(map[models.Theme][]Frame, len(set.Frames)+1)
		for theme, seq := range set.Frames {
			if len(seq) > 0 {
				frames[theme] = seq
			}
		}
		if len(frames) == 0 {
			return nil, fmt.Errorf("icon %q has no frames", name)
		}

		if opts.TemplateAuto && set.Themed {
			if _, ok := frames[models.ThemeAuto]; !ok {
				frames[models.ThemeAuto] = templateOf(frames)
			}
		}

		c.sets[name] = Set{Themed: set.Themed, Frames: frames}
	}

	if len(c.sets) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// templateOf derives Auto frames from the light sequence, else the dark one.
func templateOf(frames map[models.Theme][]Frame) []Frame {
	src, ok := frames[models.ThemeLight]
	if !ok {
		src = frames[models.ThemeDark]
	}
	out := make([]Frame, len(src))
	for i, f := range src {
		out[i] = Frame{Data: f.Data, Template: true}
	}
	return out
}

// IconSet returns the frames for name in theme.
//
// When the family has no frames for theme, Auto is first resolved through
// the system theme, then any available theme is used in menu order. The
// result is never empty when err is nil.
func (c *Catalog) IconSet(name string, theme models.Theme) ([]Frame, error) {
	set, ok := c.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIcon, name)
	}

	if !set.Themed {
		for _, t := range models.AllThemes {
			if frames, ok := set.Frames[t]; ok {
				return frames, nil
			}
		}
	}

	if frames, ok := set.Frames[theme]; ok {
		return frames, nil
	}

	if theme == models.ThemeAuto && c.systemTheme != nil {
		if frames, ok := set.Frames[c.systemTheme()]; ok {
			return frames, nil
		}
	}

	for _, t := range models.AllThemes {
		if frames, ok := set.Frames[t]; ok {
			return frames, nil
		}
	}
	return nil, fmt.Errorf("%w: %q has no frames", ErrUnknownIcon, name)
}

// Has reports whether name is a known family, including hidden ones.
func (c *Catalog) Has(name string) bool {
	_, ok := c.sets[name]
	return ok
}

// SupportsThemes reports whether name comes in more than one variant.
func (c *Catalog) SupportsThemes(name string) bool {
	return c.sets[name].Themed
}

// AvailableIcons returns the user-selectable families, sorted.
func (c *Catalog) AvailableIcons() []string {
	icons := make([]string, 0, len(c.sets))
	for name := range c.sets {
		if name == SleepIcon {
			continue
		}
		icons = append(icons, name)
	}
	sort.Strings(icons)
	return icons
}

// AvailableThemes returns the themes name can be shown in, in menu order.
// Auto is offered when it has frames of its own, or when the family has
// both variants and a system theme resolver is configured.
func (c *Catalog) AvailableThemes(name string) []models.Theme {
	set, ok := c.sets[name]
	if !ok {
		return nil
	}
	var themes []models.Theme
	for _, t := range models.AllThemes {
		if _, ok := set.Frames[t]; ok {
			themes = append(themes, t)
		}
	}
	if c.systemTheme != nil && set.Themed && !slices.Contains(themes, models.ThemeAuto) {
		_, dark := set.Frames[models.ThemeDark]
		_, light := set.Frames[models.ThemeLight]
		if dark && light {
			themes = append(themes, models.ThemeAuto)
		}
	}
	return themes
}
