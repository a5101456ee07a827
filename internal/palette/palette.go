// Package palette holds the fixed set of display colors assigned to team
// members and the allocation policy for handing them out.
package palette

import "math/rand/v2"

// Colors is one display triple applied to a member and its events.
type Colors struct {
	BG     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

// Default is the ordered palette members draw from. Indices into this slice
// are persisted, so entries must not be reordered.
var Default = []Colors{
	{BG: "#E3F2FD", Border: "#2196F3", Text: "#1565C0"}, // blue
	{BG: "#F1F8E9", Border: "#8BC34A", Text: "#558B2F"}, // green
	{BG: "#FFF3E0", Border: "#FF9800", Text: "#EF6C00"}, // orange
	{BG: "#F3E5F5", Border: "#9C27B0", Text: "#6A1B9A"}, // purple
	{BG: "#E0F2F1", Border: "#009688", Text: "#00695C"}, // teal
	{BG: "#FFEBEE", Border: "#F44336", Text: "#C62828"}, // red
	{BG: "#E8EAF6", Border: "#3F51B5", Text: "#283593"}, // indigo
	{BG: "#FFF8E1", Border: "#FFC107", Text: "#FF8F00"}, // amber
	{BG: "#E0F7FA", Border: "#00BCD4", Text: "#00838F"}, // cyan
	{BG: "#FCE4EC", Border: "#E91E63", Text: "#AD1457"}, // pink
	{BG: "#F5F5F5", Border: "#9E9E9E", Text: "#424242"}, // gray
	{BG: "#EFEBE9", Border: "#795548", Text: "#4E342E"}, // brown
	{BG: "#E8F5E9", Border: "#4CAF50", Text: "#2E7D32"}, // light green
	{BG: "#FFF3E0", Border: "#FF5722", Text: "#D84315"}, // deep orange
	{BG: "#F3E5F5", Border: "#673AB7", Text: "#4527A0"}, // deep purple
}

// Allocator picks palette indices for new members.
type Allocator struct {
	palette []Colors
	intn    func(n int) int
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithRand overrides the random source, used by tests for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(a *Allocator) {
		a.intn = rng.IntN
	}
}

// NewAllocator creates an Allocator over the given palette. A nil or empty
// palette falls back to Default.
func NewAllocator(palette []Colors, opts ...Option) *Allocator {
	if len(palette) == 0 {
		palette = Default
	}
	a := &Allocator{palette: palette, intn: rand.IntN}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Size returns the number of entries in the allocator's palette.
func (a *Allocator) Size() int {
	return len(a.palette)
}

// Colors returns the color triple for a palette index. Indices outside the
// palette wrap, so stale persisted indices still render something.
func (a *Allocator) Colors(index int) Colors {
	if index < 0 {
		index = -index
	}
	return a.palette[index%len(a.palette)]
}

// Pick returns a palette index for a new member. While unused indices
// remain it picks uniformly among them; once the palette is exhausted it
// picks uniformly among all indices, permitting collisions rather than
// refusing the member.
func (a *Allocator) Pick(used map[int]bool) int {
	available := make([]int, 0, len(a.palette))
	for i := range a.palette {
		if !used[i] {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		return a.intn(len(a.palette))
	}
	return available[a.intn(len(available))]
}
