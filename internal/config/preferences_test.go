package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpucat/cpucat/internal/models"
)

type fakeAutostart struct {
	enabled bool
	err     error
}

func (f *fakeAutostart) Enabled() (bool, error) { return f.enabled, f.err }

func (f *fakeAutostart) SetEnabled(enable bool) error {
	if f.err != nil {
		return f.err
	}
	f.enabled = enable
	return nil
}

type fixedTheme models.Theme

func (f fixedTheme) Default() models.Theme { return models.Theme(f) }

func newPrefs(t *testing.T, system models.Theme) (*Preferences, *fakeAutostart) {
	t.Helper()
	auto := &fakeAutostart{}
	return NewPreferences(openTemp(t), auto, fixedTheme(system), "cat"), auto
}

func TestPreferences_IconDefault(t *testing.T) {
	t.Parallel()

	p, _ := newPrefs(t, models.ThemeDark)
	assert.Equal(t, "cat", p.Icon())

	require.NoError(t, p.SetIcon("parrot"))
	assert.Equal(t, "parrot", p.Icon())
	assert.Error(t, p.SetIcon(""))
}

func TestPreferences_ThemeRoundTrip(t *testing.T) {
	t.Parallel()

	p, _ := newPrefs(t, models.ThemeLight)
	assert.Equal(t, models.ThemeLight, p.Theme())

	dark := models.ThemeDark
	require.NoError(t, p.SetTheme(&dark))
	assert.Equal(t, models.ThemeDark, p.Theme())
	stored, ok := p.StoredTheme()
	assert.True(t, ok)
	assert.Equal(t, models.ThemeDark, stored)

	require.NoError(t, p.SetTheme(nil))
	assert.Equal(t, models.ThemeLight, p.Theme())
	_, ok = p.StoredTheme()
	assert.False(t, ok)
}

func TestPreferences_InvalidStoredThemeFallsBack(t *testing.T) {
	t.Parallel()

	p, _ := newPrefs(t, models.ThemeAuto)
	require.NoError(t, p.Store().SetString(KeyTheme, "sepia"))
	assert.Equal(t, models.ThemeAuto, p.Theme())

	bad := models.Theme(42)
	assert.ErrorIs(t, p.SetTheme(&bad), models.ErrInvalidTheme)
}

func TestPreferences_RunOnStartUsesRegistration(t *testing.T) {
	t.Parallel()

	p, auto := newPrefs(t, models.ThemeDark)
	on, err := p.RunOnStart()
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, p.SetRunOnStart(true))
	assert.True(t, auto.enabled)
	_, ok := p.Store().GetString(KeyRunOnStart)
	assert.False(t, ok)

	auto.err = errors.New("denied")
	assert.Error(t, p.SetRunOnStart(false))
}
