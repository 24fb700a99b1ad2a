package catalog

import (
	"archive/tar"
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/klauspost/compress/gzip"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpucat/cpucat/internal/models"
)

// pngFrame renders a size x size frame whose first pixel encodes tag.
func pngFrame(t *testing.T, size int, tag uint8) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	img.Set(0, 0, color.NRGBA{R: tag, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func buildArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(zw)
	for name, data := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(data)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func firstPixelTag(t *testing.T, data []byte) uint8 {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 0).RGBA()
	return uint8(r >> 8)
}

func testArchive(t *testing.T) []byte {
	return buildArchive(t, map[string][]byte{
		"cat/dark/1.png":    pngFrame(t, 32, 11),
		"cat/dark/0.png":    pngFrame(t, 32, 10),
		"cat/light/0.png":   pngFrame(t, 32, 20),
		"cat/light/1.png":   pngFrame(t, 32, 21),
		"parrot/dark/0.png": pngFrame(t, 32, 30),
		"sleep/dark/0.png":  pngFrame(t, 32, 40),
		"sleep/light/0.png": pngFrame(t, 32, 50),
		"nyan/0.png":        pngFrame(t, 32, 60),
		"README.txt":        []byte("ignored"),
		"cat/sepia/0.png":   pngFrame(t, 32, 99),
	})
}

func TestLoad_GroupsAndOrdersFrames(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{})
	require.NoError(t, err)

	frames, err := c.IconSet("cat", models.ThemeDark)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, uint8(10), firstPixelTag(t, frames[0].Data))
	assert.Equal(t, uint8(11), firstPixelTag(t, frames[1].Data))

	frames, err = c.IconSet("cat", models.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, uint8(20), firstPixelTag(t, frames[0].Data))
}

func TestLoad_AvailableIconsHidesSleep(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "nyan", "parrot"}, c.AvailableIcons())
	assert.True(t, c.Has(SleepIcon))
}

func TestLoad_ThemeSupport(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{})
	require.NoError(t, err)

	assert.True(t, c.SupportsThemes("cat"))
	assert.False(t, c.SupportsThemes("nyan"))
	assert.False(t, c.SupportsThemes("missing"))
	assert.Equal(t, []models.Theme{models.ThemeDark, models.ThemeLight}, c.AvailableThemes("cat"))
	assert.Equal(t, []models.Theme{models.ThemeDark}, c.AvailableThemes("parrot"))
	assert.Nil(t, c.AvailableThemes("missing"))
}

func TestIconSet_Fallback(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{
		SystemTheme: func() models.Theme { return models.ThemeLight },
	})
	require.NoError(t, err)

	assert.Equal(t, []models.Theme{models.ThemeDark, models.ThemeLight, models.ThemeAuto}, c.AvailableThemes("cat"))
	assert.Equal(t, []models.Theme{models.ThemeDark}, c.AvailableThemes("parrot"))

	tests := []struct {
		name  string
		icon  string
		theme models.Theme
		want  uint8
	}{
		{"unsupported theme falls back to available", "parrot", models.ThemeLight, 30},
		{"auto resolves through system theme", "cat", models.ThemeAuto, 20},
		{"unthemed ignores theme", "nyan", models.ThemeLight, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := c.IconSet(tt.icon, tt.theme)
			require.NoError(t, err)
			require.NotEmpty(t, frames)
			assert.Equal(t, tt.want, firstPixelTag(t, frames[0].Data))
		})
	}
}

func TestIconSet_UnknownIcon(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{})
	require.NoError(t, err)

	_, err = c.IconSet("dog", models.ThemeDark)
	assert.ErrorIs(t, err, ErrUnknownIcon)
}

func TestLoad_TemplateAuto(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{TemplateAuto: true})
	require.NoError(t, err)

	frames, err := c.IconSet("cat", models.ThemeAuto)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.True(t, frames[0].Template)
	assert.Equal(t, uint8(20), firstPixelTag(t, frames[0].Data))

	frames, err = c.IconSet("parrot", models.ThemeAuto)
	require.NoError(t, err)
	assert.True(t, frames[0].Template)
	assert.Equal(t, uint8(30), firstPixelTag(t, frames[0].Data))

	assert.Equal(t, []models.Theme{models.ThemeDark, models.ThemeLight, models.ThemeAuto}, c.AvailableThemes("cat"))
	assert.Equal(t, []models.Theme{models.ThemeDark}, c.AvailableThemes("nyan"))
}

func TestLoad_ResizesFrames(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{FrameSize: 16})
	require.NoError(t, err)

	frames, err := c.IconSet("cat", models.ThemeDark)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(frames[0].Data))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
}

func TestLoad_ICOFormat(t *testing.T) {
	t.Parallel()

	c, err := Load(bytes.NewReader(testArchive(t)), Options{Format: FormatICO, FrameSize: 16})
	require.NoError(t, err)

	frames, err := c.IconSet("cat", models.ThemeDark)
	require.NoError(t, err)
	data := frames[0].Data

	require.Greater(t, len(data), 6)
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[2:]), "icon type")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[4:]), "image count")

	img, err := ico.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	full, err := Load(bytes.NewReader(testArchive(t)), Options{Format: FormatICO})
	require.NoError(t, err)
	frames, err = full.IconSet("cat", models.ThemeDark)
	require.NoError(t, err)
	img, err = ico.Decode(bytes.NewReader(frames[0].Data))
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint8(10), uint8(r>>8))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(bytes.NewReader([]byte("not gzip")), Options{})
	assert.Error(t, err)

	_, err = Load(bytes.NewReader(buildArchive(t, map[string][]byte{"notes.txt": []byte("x")})), Options{})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestFromSets_DropsEmptySequences(t *testing.T) {
	t.Parallel()

	_, err := FromSets(map[string]Set{
		"cat": {Themed: true, Frames: map[models.Theme][]Frame{models.ThemeDark: nil}},
	}, Options{})
	assert.Error(t, err)

	c, err := FromSets(map[string]Set{
		"cat": {Themed: true, Frames: map[models.Theme][]Frame{
			models.ThemeDark:  {{Data: []byte{1}}},
			models.ThemeLight: {},
		}},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []models.Theme{models.ThemeDark}, c.AvailableThemes("cat"))
}

