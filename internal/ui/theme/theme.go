package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/content"
)

// Palette is one set of UI colors.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

var palettes = map[content.AgeBand]Palette{
	// Young learners: warm, high-contrast.
	content.BandK2: {
		Primary:   lipgloss.Color("#F97316"), // Orange
		Secondary: lipgloss.Color("#FACC15"), // Sunflower
		Accent:    lipgloss.Color("#EC4899"), // Pink
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#EF4444"),
		Text:      lipgloss.Color("#FFFBEB"),
		TextDim:   lipgloss.Color("#D6D3D1"),
		BgDark:    lipgloss.Color("#1C1917"),
		BgCard:    lipgloss.Color("#292524"),
		Border:    lipgloss.Color("#57534E"),
	},
	content.BandG35: {
		Primary:   lipgloss.Color("#14B8A6"), // Teal
		Secondary: lipgloss.Color("#8B5CF6"), // Purple
		Accent:    lipgloss.Color("#F97316"),
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		BgDark:    lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	},
	content.BandG68: {
		Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#F97316"), // Orange
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"), // White
		TextDim:   lipgloss.Color("#94A3B8"), // Slate
		BgDark:    lipgloss.Color("#0F172A"), // Deep Navy
		BgCard:    lipgloss.Color("#1E293B"), // Dark Slate
		Border:    lipgloss.Color("#334155"), // Slate
	},
	// Older learners: muted.
	content.BandG912: {
		Primary:   lipgloss.Color("#60A5FA"), // Sky
		Secondary: lipgloss.Color("#A3A3A3"),
		Accent:    lipgloss.Color("#FBBF24"),
		Success:   lipgloss.Color("#4ADE80"),
		Error:     lipgloss.Color("#F87171"),
		Text:      lipgloss.Color("#E5E7EB"),
		TextDim:   lipgloss.Color("#9CA3AF"),
		BgDark:    lipgloss.Color("#111827"),
		BgCard:    lipgloss.Color("#1F2937"),
		Border:    lipgloss.Color("#374151"),
	},
}

// DefaultBand is used when a grade cannot be mapped.
const DefaultBand = content.BandG68

// BandForGrade maps a grade string to the band whose palette is shown.
// Unknown or out-of-range grades use DefaultBand. This is deliberately
// separate from content.AgeBandForGrades, which defaults to the oldest band.
func BandForGrade(grade string) content.AgeBand {
	g, ok := content.ParseGrade(grade)
	if !ok || g < 0 || g > 12 {
		return DefaultBand
	}
	return content.AgeBandForGrade(g)
}

// ForBand returns the palette of band, or the default palette.
func ForBand(band content.AgeBand) Palette {
	if p, ok := palettes[band]; ok {
		return p
	}
	return palettes[DefaultBand]
}

// Current colors. Apply swaps them.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Styles built from the current colors.
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Body      lipgloss.Style
	Hint      lipgloss.Style
	Card      lipgloss.Style
	Selected  lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
)

func init() {
	Apply(ForBand(DefaultBand))
}

// Apply makes p the current palette. Call it before the UI starts.
func Apply(p Palette) {
	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
}
