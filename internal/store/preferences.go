package store

import (
	"context"
	"fmt"
)

// Theme names accepted by Preferences.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Preferences reads and writes UI preferences kept alongside the tasks.
type Preferences struct {
	kv KV
}

// NewPreferences wraps kv.
func NewPreferences(kv KV) *Preferences {
	return &Preferences{kv: kv}
}

// Theme returns the stored theme, or fallback when none has been saved.
func (p *Preferences) Theme(ctx context.Context, fallback string) (string, error) {
	v, ok, err := p.kv.Get(ctx, KeyTheme)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	switch v {
	case ThemeAuto, ThemeDark, ThemeLight:
		return v, nil
	default:
		return fallback, nil
	}
}

// SetTheme stores the theme preference.
func (p *Preferences) SetTheme(ctx context.Context, theme string) error {
	switch theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q", theme)
	}
	return p.kv.Set(ctx, KeyTheme, theme)
}
