// Package theme holds the light and dark palettes and hands out lipgloss styles for
// the active one. The Provider is created once by the caller and passed around;
// there is no package-level current theme.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects a palette.
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// ParseMode accepts "dark" or "light", case-insensitive.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Dark, fmt.Errorf("unknown theme %q (want dark or light)", value)
	}
}

// Palette is the raw colour set for one mode.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Foreground lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	Current    lipgloss.Color
	BarStart   string
	BarEnd     string
}

var (
	darkPalette = Palette{
		Primary:    lipgloss.Color("#8ecae6"),
		Secondary:  lipgloss.Color("147"),
		Accent:     lipgloss.Color("#ffb347"),
		Success:    lipgloss.Color("#a3be8c"),
		Warning:    lipgloss.Color("#ffd166"),
		Error:      lipgloss.Color("9"),
		Muted:      lipgloss.Color("244"),
		Foreground: lipgloss.Color("#e0def4"),
		Surface:    lipgloss.Color("#1f1d2e"),
		Border:     lipgloss.Color("#56526e"),
		Highlight:  lipgloss.Color("190"),
		Current:    lipgloss.Color("229"),
		BarStart:   "#5A56E0",
		BarEnd:     "#EE6FF8",
	}
	lightPalette = Palette{
		Primary:    lipgloss.Color("#1E40AF"),
		Secondary:  lipgloss.Color("#6B21A8"),
		Accent:     lipgloss.Color("#C2410C"),
		Success:    lipgloss.Color("#047857"),
		Warning:    lipgloss.Color("#B45309"),
		Error:      lipgloss.Color("#B91C1C"),
		Muted:      lipgloss.Color("#6B7280"),
		Foreground: lipgloss.Color("#111827"),
		Surface:    lipgloss.Color("#F3F4F6"),
		Border:     lipgloss.Color("#9CA3AF"),
		Highlight:  lipgloss.Color("#FDE68A"),
		Current:    lipgloss.Color("#FCD34D"),
		BarStart:   "#1E40AF",
		BarEnd:     "#7C3AED",
	}
)

// PaletteFor returns the colours used for mode.
func PaletteFor(mode Mode) Palette {
	if mode == Light {
		return lightPalette
	}
	return darkPalette
}

// Provider owns the active mode and caches the styles built from it.
type Provider struct {
	mu     sync.Mutex
	mode   Mode
	styles *Styles
}

// NewProvider returns a provider starting in mode.
func NewProvider(mode Mode) *Provider {
	return &Provider{mode: mode}
}

func (p *Provider) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Toggle flips between dark and light and returns the new mode.
func (p *Provider) Toggle() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == Dark {
		p.mode = Light
	} else {
		p.mode = Dark
	}
	p.styles = nil
	return p.mode
}

func (p *Provider) Set(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != mode {
		p.mode = mode
		p.styles = nil
	}
}

// Styles returns the style set for the current mode, rebuilding it after a change.
func (p *Provider) Styles() *Styles {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.styles == nil {
		p.styles = Build(PaletteFor(p.mode))
		p.styles.Mode = p.mode
	}
	return p.styles
}
