package enums

import "fmt"

// PudoSize classifies a product for shipping cost lookup. Ordering matters:
// XS < S < M < L < XL, and a cart ships at its largest item's size.
type PudoSize string

const (
	PudoSizeXS PudoSize = "XS"
	PudoSizeS  PudoSize = "S"
	PudoSizeM  PudoSize = "M"
	PudoSizeL  PudoSize = "L"
	PudoSizeXL PudoSize = "XL"
)

var pudoSizeOrder = map[PudoSize]int{
	PudoSizeXS: 0,
	PudoSizeS:  1,
	PudoSizeM:  2,
	PudoSizeL:  3,
	PudoSizeXL: 4,
}

// String implements fmt.Stringer.
func (s PudoSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PudoSize.
func (s PudoSize) IsValid() bool {
	_, ok := pudoSizeOrder[s]
	return ok
}

// Rank returns the position of the size in the XS..XL ordering.
func (s PudoSize) Rank() int {
	return pudoSizeOrder[s]
}

// Max returns the larger of the two sizes.
func (s PudoSize) Max(other PudoSize) PudoSize {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// ParsePudoSize converts raw input into a PudoSize.
func ParsePudoSize(value string) (PudoSize, error) {
	candidate := PudoSize(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid pudo size %q", value)
	}
	return candidate, nil
}
