package task

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// StoreKey is the namespaced durable-storage key for AppState.
const StoreKey = "tagtodo-state-v1"

// DateLayout is the ISO-8601 calendar date layout used for Task.Due.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority in selector order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority maps raw input onto a Priority. Unrecognized input clamps
// to PriorityMedium and reports ok=false.
func ParsePriority(raw string) (p Priority, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "l":
		return PriorityLow, true
	case "medium", "med", "m":
		return PriorityMedium, true
	case "high", "h":
		return PriorityHigh, true
	default:
		return PriorityMedium, false
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	default:
		return "Medium"
	}
}

// Next cycles through Priorities; step may be negative.
func (p Priority) Next(step int) Priority {
	idx := 1
	for i, v := range Priorities {
		if v == p {
			idx = i
		}
	}
	n := len(Priorities)
	return Priorities[((idx+step)%n+n)%n]
}

type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

var Filters = []Filter{FilterAll, FilterActive, FilterDone}

// ParseFilter maps raw input onto a Filter, clamping unknown values to FilterAll.
func ParseFilter(raw string) (f Filter, ok bool) {
	switch Filter(strings.ToLower(strings.TrimSpace(raw))) {
	case FilterAll:
		return FilterAll, true
	case FilterActive:
		return FilterActive, true
	case FilterDone:
		return FilterDone, true
	default:
		return FilterAll, false
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterDone:
		return "Done"
	default:
		return "All"
	}
}

func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

type Task struct {
	ID       string   `json:"id" validate:"required"`
	Title    string   `json:"title" validate:"required,notblank"`
	Done     bool     `json:"done"`
	Due      string   `json:"due,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Priority Priority `json:"priority" validate:"oneof=low medium high"`
	Tags     []string `json:"tags" validate:"dive,tagword"`
}

// DueLabel renders Due as two-digit month/two-digit year. Unparseable
// dates are shown verbatim.
func (t Task) DueLabel() string {
	if t.Due == "" {
		return ""
	}
	d, err := time.Parse(DateLayout, t.Due)
	if err != nil {
		return t.Due
	}
	return d.Format("01/06")
}

type AppState struct {
	Items  []Task `json:"items" validate:"dive"`
	Filter Filter `json:"filter" validate:"oneof=all active done"`
	Search string `json:"search"`
}

func DefaultState() AppState {
	return AppState{Items: []Task{}, Filter: FilterAll, Search: ""}
}

var (
	validate    = validator.New()
	tagWordExpr = regexp.MustCompile(`^[a-z0-9_]+$`)
)

func init() {
	_ = validate.RegisterValidation("tagword", func(fl validator.FieldLevel) bool {
		return tagWordExpr.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validate reports whether a decoded AppState is structurally usable.
func Validate(s AppState) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}
	seen := make(map[string]struct{}, len(s.Items))
	for _, t := range s.Items {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("invalid state: duplicate task id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}
