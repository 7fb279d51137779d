package model

import "strings"

// Stage is a workflow state of a sales order in Cin7.
type Stage string

// StagePrefix namespaces every kickplate stage.
const StagePrefix = "Kickplate - "

// The four workshop stages, in board order.
const (
	StageNew         Stage = "Kickplate - New"
	StageProcessing  Stage = "Kickplate - Processing"
	StageJobComplete Stage = "Kickplate - Job Complete"
	StageToCollect   Stage = "Kickplate - To Collect"
)

// Stages returns the known kickplate stages in board order.
func Stages() []Stage {
	return []Stage{StageNew, StageProcessing, StageJobComplete, StageToCollect}
}

// IsKnown reports whether s is one of the four board stages.
func (s Stage) IsKnown() bool {
	switch s {
	case StageNew, StageProcessing, StageJobComplete, StageToCollect:
		return true
	default:
		return false
	}
}

// InNamespace reports whether s carries the kickplate prefix.
func (s Stage) InNamespace() bool {
	return strings.HasPrefix(string(s), StagePrefix)
}

// Short drops the namespace prefix for compact display.
func (s Stage) Short() string {
	return strings.TrimPrefix(string(s), StagePrefix)
}

// ParseStage accepts a full stage name or its short form, ignoring case.
func ParseStage(name string) (Stage, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Stages() {
		if strings.EqualFold(name, string(s)) || strings.EqualFold(name, s.Short()) {
			return s, true
		}
	}
	return "", false
}

// ExcludedStages are filtered out server-side when listing orders.
var ExcludedStages = []string{
	"Fully Dispatched", "Dispatched", "Cancelled", "Declined",
	"To Call", "Awaiting PO", "Awaiting Payment",
	"Release To Pick", "Partially Picked", "Fully Picked",
	"Fully Picked - Hold", "On Hold", "Ready to Invoice",
	"Release To Pick - WMS", "Ready To Pack - WMS",
}
