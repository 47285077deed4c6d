package engine

import (
	"context"
	"sort"
)

// ArgStrategy tags how a tool's raw argument text is turned into arguments.
type ArgStrategy int

const (
	// ArgNone: the tool takes no parameters; the raw text is ignored.
	ArgNone ArgStrategy = iota
	// ArgString: one layer of surrounding double quotes is stripped and the
	// text is passed as the tool's single named parameter (Tool.Param).
	ArgString
	// ArgKeywords: the text is parsed as a JSON object of keyword arguments;
	// if that fails the whole quote-stripped text becomes the value of
	// DefaultKeyword.
	ArgKeywords
)

// DefaultKeyword receives the raw argument text when keyword parsing
// falls back.
const DefaultKeyword = "keyword"

// ToolFunc executes one registered operation. The result is serialized to
// the observation wire format by dispatch; it must be JSON-marshalable.
type ToolFunc func(ctx context.Context, args map[string]string) (any, error)

// Tool pairs an action name the model may emit with the operation behind it.
type Tool struct {
	Name        string
	Description string
	Param       string // parameter name filled by ArgString dispatch
	Strategy    ArgStrategy
	Fn          ToolFunc
}

// ToolRegistry is the fixed action-name-to-operation mapping for a planner.
// It is read-only after construction and safe to share.
type ToolRegistry map[string]Tool

// Names returns the registered action names in sorted order.
func (r ToolRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
