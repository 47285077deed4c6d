// Package prompts builds the system prompt that drives the planning
// protocol.
package prompts

import (
	"fmt"
	"strings"

	"github.com/mkobayashi/tabiplan/internal/engine"
)

const header = `You are a professional Tokyo travel planning assistant. Think and act
using the ReAct pattern:
1. Thought: analyze the situation and decide the next step
2. Action: pick one of the available tools
%s3. Observation: read the tool result
4. Repeat until you can answer the user's question

Answer strictly in this format:
Thought: your reasoning
Action: tool name
Action Input: tool arguments

When you give the final answer, leave out the Action and Action Input
lines and provide a detailed travel plan.`

// BuildSystemPrompt renders the planner's system prompt with the tool
// catalog the registry exposes, in stable sorted order.
func BuildSystemPrompt(reg engine.ToolRegistry) string {
	var catalog strings.Builder
	for _, name := range reg.Names() {
		tool := reg[name]
		catalog.WriteString(fmt.Sprintf("   - %s: %s\n", tool.Name, tool.Description))
	}
	return fmt.Sprintf(header, catalog.String())
}
