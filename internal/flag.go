package internal

import (
	"fmt"
	"math/bits"
	"strings"
)

// Flag identifies one aspect of a component by a single bit.
// A Flag value may also hold several bits, in which case it is a mask.
type Flag uint32

const FlagNone Flag = 0

const (
	FlagStyles Flag = 1 << iota
	FlagProperties
	FlagSizeConstraints
	FlagLayout
	FlagTransform
	FlagConcatenatedTransform
	FlagConcatenatedColor
	FlagViewport
	FlagHierarchyAscending
	FlagHierarchyDescending
	FlagInteractiveMode
	FlagLayoutMembership

	// FlagExtra is the first bit left for component specific aspects.
	FlagExtra
)

const FlagAll Flag = ^Flag(0)

var flagNames = []string{
	"styles",
	"properties",
	"size-constraints",
	"layout",
	"transform",
	"concatenated-transform",
	"concatenated-color",
	"viewport",
	"hierarchy-ascending",
	"hierarchy-descending",
	"interactive-mode",
	"layout-membership",
}

// Single reports whether exactly one bit is set.
func (f Flag) Single() bool {
	return f != 0 && f&(f-1) == 0
}

// Each calls fn with every bit of f, lowest first.
func (f Flag) Each(fn func(Flag)) {
	for f != 0 {
		bit := f & -f
		fn(bit)
		f &^= bit
	}
}

func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	if f == FlagAll {
		return "all"
	}

	parts := make([]string, 0, bits.OnesCount32(uint32(f)))
	f.Each(func(bit Flag) {
		i := bits.TrailingZeros32(uint32(bit))
		if i < len(flagNames) {
			parts = append(parts, flagNames[i])
		} else {
			parts = append(parts, fmt.Sprintf("extra(%#x)", uint32(bit)))
		}
	})

	return strings.Join(parts, "|")
}
