package aspect

import "github.com/AnatoleLucet/aspect/internal"

// Flag identifies one aspect of a component by a single bit, or a set of
// aspects when several bits are set.
type Flag = internal.Flag

// Aspects shared by convention across component types. The engine only
// cares about bit identity, the names are for widget authors.
const (
	FlagNone                  = internal.FlagNone
	FlagStyles                = internal.FlagStyles
	FlagProperties            = internal.FlagProperties
	FlagSizeConstraints       = internal.FlagSizeConstraints
	FlagLayout                = internal.FlagLayout
	FlagTransform             = internal.FlagTransform
	FlagConcatenatedTransform = internal.FlagConcatenatedTransform
	FlagConcatenatedColor     = internal.FlagConcatenatedColor
	FlagViewport              = internal.FlagViewport
	FlagHierarchyAscending    = internal.FlagHierarchyAscending
	FlagHierarchyDescending   = internal.FlagHierarchyDescending
	FlagInteractiveMode       = internal.FlagInteractiveMode
	FlagLayoutMembership      = internal.FlagLayoutMembership

	// FlagExtra is the first bit free for component specific aspects.
	FlagExtra = internal.FlagExtra

	FlagVertices     = FlagExtra
	FlagTextElements = FlagExtra << 1
	FlagLines        = FlagExtra << 2

	FlagAll = internal.FlagAll
)
