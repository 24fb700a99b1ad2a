package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/events"
	"github.com/cpucat/cpucat/internal/models"
	"github.com/cpucat/cpucat/internal/state"
)

func TestBuildMenu_Layout(t *testing.T) {
	t.Parallel()

	menu := BuildMenu(state.Snapshot{Icon: "cat", Theme: models.ThemeLight}, testCatalog(t), true)

	want := "Theme\n" +
		"  [ ] Dark\n" +
		"  [x] Light\n" +
		"Icon\n" +
		"  [x] Cat\n" +
		"  [ ] Parrot\n" +
		"---\n" +
		"[x] Run on Start\n" +
		"---\n" +
		"System Monitor\n" +
		"About\n" +
		"---\n" +
		"Exit"
	assert.Equal(t, want, menu.String())
}

func TestBuildMenu_Events(t *testing.T) {
	t.Parallel()

	menu := BuildMenu(state.Snapshot{Icon: "cat", Theme: models.ThemeDark}, testCatalog(t), false)

	tests := []struct {
		title string
		want  events.Event
	}{
		{title: "Dark", want: events.Theme(models.ThemeDark)},
		{title: "Parrot", want: events.Icon("parrot")},
		{title: MenuRunOnStart, want: events.Of(events.ToggleRunOnStart)},
		{title: MenuSystemMonitor, want: events.Of(events.OpenSystemMonitor)},
		{title: MenuAbout, want: events.Of(events.ShowAbout)},
		{title: MenuExit, want: events.Of(events.Exit)},
	}
	for _, tt := range tests {
		item, ok := menu.Find(tt.title)
		require.True(t, ok, tt.title)
		assert.Equal(t, tt.want, item.Event, tt.title)
	}
}

func TestBuildMenu_HidesThemesForUnthemedIcon(t *testing.T) {
	t.Parallel()

	cat := BuildMenu(state.Snapshot{Icon: "cat", Theme: models.ThemeDark}, testCatalog(t), false)
	parrot := BuildMenu(state.Snapshot{Icon: "parrot", Theme: models.ThemeDark}, testCatalog(t), false)

	_, ok := parrot.Find(MenuTheme)
	assert.False(t, ok)
	assert.Len(t, parrot.Items, len(cat.Items), "menu shape is stable")
}

func TestBuildMenu_ShowsSingleThemeForThemedIcon(t *testing.T) {
	t.Parallel()

	f := []catalog.Frame{{Data: []byte{1}}}
	c, err := catalog.FromSets(map[string]catalog.Set{
		"cat":  {Themed: true, Frames: map[models.Theme][]catalog.Frame{models.ThemeDark: f}},
		"moon": {Frames: map[models.Theme][]catalog.Frame{models.ThemeDark: f}},
	}, catalog.Options{})
	require.NoError(t, err)

	menu := BuildMenu(state.Snapshot{Icon: "cat", Theme: models.ThemeDark}, c, false)
	theme, ok := menu.Find(MenuTheme)
	require.True(t, ok)
	require.Len(t, theme.Children, 1)
	assert.Equal(t, "Dark", theme.Children[0].Title)
	assert.True(t, theme.Children[0].Checked)
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Cat", DisplayName("cat"))
	assert.Equal(t, "Nyan Cat", DisplayName("nyan cat"))
}
