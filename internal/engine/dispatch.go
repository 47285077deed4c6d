package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Dispatch invokes the tool named by the action and serializes its result
// into an observation string. Unknown actions and tool failures never
// escape as errors: they become deterministic observations the model can
// see and react to on the next turn.
func Dispatch(ctx context.Context, reg ToolRegistry, action ParsedAction) string {
	tool, ok := reg[action.Name]
	if !ok {
		return fmt.Sprintf("unknown action: %s", action.Name)
	}

	result, err := tool.Fn(ctx, buildArgs(tool, action.Input))
	if err != nil {
		return fmt.Sprintf("error executing action: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("error executing action: %v", err)
	}
	return string(out)
}

// buildArgs derives the argument map from the raw argument text according
// to the tool's parameter strategy.
func buildArgs(tool Tool, raw string) map[string]string {
	switch tool.Strategy {
	case ArgString:
		return map[string]string{tool.Param: stripQuotes(raw)}
	case ArgKeywords:
		return keywordArgs(raw)
	}
	return nil
}

// keywordArgs parses the raw text as a JSON object. Non-string values are
// stringified. Anything unparsable falls back to the default keyword.
func keywordArgs(raw string) map[string]string {
	var loose map[string]any
	if err := json.Unmarshal([]byte(raw), &loose); err == nil {
		args := make(map[string]string, len(loose))
		for k, v := range loose {
			if s, ok := v.(string); ok {
				args[k] = s
			} else {
				args[k] = fmt.Sprint(v)
			}
		}
		return args
	}
	return map[string]string{DefaultKeyword: stripQuotes(raw)}
}

// stripQuotes removes exactly one layer of surrounding double quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
