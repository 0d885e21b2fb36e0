package common

import "github.com/secmon-lab/vizopts/pkg/domain/model/option"

// Axis placement values
const (
	AxisPlacementAuto   = "auto"
	AxisPlacementLeft   = "left"
	AxisPlacementRight  = "right"
	AxisPlacementTop    = "top"
	AxisPlacementBottom = "bottom"
	AxisPlacementHidden = "hidden"
)

// Scale distributions
const (
	ScaleLinear  = "linear"
	ScaleLog     = "log"
	ScaleOrdinal = "ordinal"
	ScaleSymlog  = "symlog"
)

// Legend display modes
const (
	LegendList  = "list"
	LegendTable = "table"
)

// Tooltip display modes and sort orders
const (
	TooltipSingle = "single"
	TooltipMulti  = "multi"
	TooltipNone   = "none"

	SortNone       = "none"
	SortAscending  = "asc"
	SortDescending = "desc"
)

// Stacking modes
const (
	StackingNone    = "none"
	StackingNormal  = "normal"
	StackingPercent = "percent"
)

// AxisPlacementOptions are the choices of the axis placement radio
var AxisPlacementOptions = []option.SelectableValue{
	{Value: AxisPlacementAuto, Label: "Auto", Description: "First field on the left, everything else on the right"},
	{Value: AxisPlacementLeft, Label: "Left"},
	{Value: AxisPlacementRight, Label: "Right"},
	{Value: AxisPlacementHidden, Label: "Hidden"},
}

// StackingOptions are the choices of the stacking editor
var StackingOptions = []option.SelectableValue{
	{Value: StackingNone, Label: "Off"},
	{Value: StackingNormal, Label: "Normal"},
	{Value: StackingPercent, Label: "100%"},
}

// Reducers lists the calculations offered by stats pickers
var Reducers = []option.SelectableValue{
	{Value: "lastNotNull", Label: "Last *", Description: "Last non-null value"},
	{Value: "last", Label: "Last", Description: "Last value"},
	{Value: "firstNotNull", Label: "First *", Description: "First non-null value"},
	{Value: "first", Label: "First", Description: "First value"},
	{Value: "min", Label: "Min"},
	{Value: "max", Label: "Max"},
	{Value: "mean", Label: "Mean"},
	{Value: "sum", Label: "Total"},
	{Value: "count", Label: "Count"},
	{Value: "range", Label: "Range"},
	{Value: "delta", Label: "Delta"},
	{Value: "diff", Label: "Difference"},
}
