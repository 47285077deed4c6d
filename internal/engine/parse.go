package engine

import (
	"regexp"
	"strings"
)

var (
	actionRe      = regexp.MustCompile(`(?m)^\s*Action:[ \t]*(.*)$`)
	actionInputRe = regexp.MustCompile(`(?m)^\s*Action Input:[ \t]*(.*)$`)
)

// ParsedAction is the action declaration extracted from a model response.
// An empty Name means the model made no tool call and the response is the
// final answer.
type ParsedAction struct {
	Name  string
	Input string
}

// ExtractAction pulls the "Action:" and "Action Input:" lines out of a
// model response. The two markers are matched independently and each is
// optional; absence is a normal terminal state, not an error. Extracted
// fields are whitespace-trimmed but otherwise untouched (quote stripping
// belongs to dispatch).
func ExtractAction(response string) ParsedAction {
	var action ParsedAction
	if m := actionRe.FindStringSubmatch(response); m != nil {
		action.Name = strings.TrimSpace(m[1])
	}
	if m := actionInputRe.FindStringSubmatch(response); m != nil {
		action.Input = strings.TrimSpace(m[1])
	}
	return action
}
