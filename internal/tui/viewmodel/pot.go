// Package viewmodel holds pure display math for the pot view. Nothing here
// touches bubbletea or lipgloss, so every scale and layout rule is testable
// in isolation.
package viewmodel

import (
	"fmt"
	"strconv"

	"github.com/dookkeobi/leakpot/internal/model"
)

// AnchorCount is the number of fixed crack positions on the pot. Categories
// beyond it wrap around and share anchors.
const AnchorCount = 12

// ThresholdStep is the granularity of a single threshold adjustment.
const ThresholdStep = 10000

// AnchorSlot maps a leaking category's position in the full list to one of
// the fixed crack anchors.
func AnchorSlot(originalIndex int) int {
	if originalIndex < 0 {
		return 0
	}
	return originalIndex % AnchorCount
}

// CrackScale grows a crack with the size of the leak.
func CrackScale(leak int64) float64 {
	return clamp(0.4+float64(leak)/80000, 0.4, 1.5)
}

// WaterScale grows the water stream with the size of the leak.
func WaterScale(leak int64) float64 {
	return clamp(0.3+float64(leak)/80000, 0.2, 2.0)
}

// PuddleScale grows the puddle under the pot with the total leak.
func PuddleScale(totalLeak int64) float64 {
	scale := 1.0 + float64(totalLeak)/300000
	if scale > 2.2 {
		return 2.2
	}
	return scale
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CrackView is one crack on the pot.
type CrackView struct {
	Name       string
	Slot       int
	LeakAmount int64
	CrackScale float64
	WaterScale float64
}

// PotView is everything the pot rendering needs.
type PotView struct {
	Cracks      []CrackView
	TotalLeak   int64
	PuddleScale float64
	Leaking     bool
}

// BuildPotView derives the pot display state from the leaking set.
func BuildPotView(leaks []model.LeakingCategory, totalLeak int64) PotView {
	cracks := make([]CrackView, 0, len(leaks))
	for _, l := range leaks {
		amount := l.LeakAmount()
		cracks = append(cracks, CrackView{
			Name:       l.Name,
			Slot:       AnchorSlot(l.OriginalIndex),
			LeakAmount: amount,
			CrackScale: CrackScale(amount),
			WaterScale: WaterScale(amount),
		})
	}

	return PotView{
		Cracks:      cracks,
		TotalLeak:   totalLeak,
		PuddleScale: PuddleScale(totalLeak),
		Leaking:     len(cracks) > 0,
	}
}

// FormatAmount renders a won amount with thousands separators.
func FormatAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}

	if negative {
		return fmt.Sprintf("-%s원", s)
	}
	return s + "원"
}
