package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamvue/internal/event"
)

func TestSettingsDefaults(t *testing.T) {
	repos := newTestRepos(t)
	settings := NewSettingsService(repos.Setting, event.NewBus())

	assert.Equal(t, "en", settings.Language())
	assert.Equal(t, "dark", settings.Theme())
}

func TestSetLanguagePersists(t *testing.T) {
	repos := newTestRepos(t)
	bus := event.NewBus()
	settings := NewSettingsService(repos.Setting, bus)

	ch, dispose := bus.Subscribe(event.TopicSettings)
	defer dispose()

	require.NoError(t, settings.SetLanguage("ja"))
	assert.Equal(t, "ja", settings.Language())

	ev := <-ch
	assert.Equal(t, event.TopicSettings, ev.Topic)
}

func TestSetLanguageRejectsUnknown(t *testing.T) {
	repos := newTestRepos(t)
	settings := NewSettingsService(repos.Setting, event.NewBus())

	assert.Error(t, settings.SetLanguage("klingon"))
	assert.Equal(t, "en", settings.Language())
}

func TestSetThemeValidation(t *testing.T) {
	repos := newTestRepos(t)
	settings := NewSettingsService(repos.Setting, event.NewBus())

	require.NoError(t, settings.SetTheme("light"))
	assert.Equal(t, "light", settings.Theme())

	assert.Error(t, settings.SetTheme("neon"))
	assert.Equal(t, "light", settings.Theme())
}
