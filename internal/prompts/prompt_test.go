package prompts

import (
	"strings"
	"testing"

	"github.com/mkobayashi/tabiplan/internal/engine"
)

func TestBuildSystemPromptListsToolsInOrder(t *testing.T) {
	reg := engine.ToolRegistry{
		"zeta_tool":  {Name: "zeta_tool", Description: "does zeta"},
		"alpha_tool": {Name: "alpha_tool", Description: "does alpha"},
	}

	got := BuildSystemPrompt(reg)

	alphaIdx := strings.Index(got, "alpha_tool: does alpha")
	zetaIdx := strings.Index(got, "zeta_tool: does zeta")
	if alphaIdx == -1 || zetaIdx == -1 {
		t.Fatalf("tool catalog missing from prompt:\n%s", got)
	}
	if alphaIdx > zetaIdx {
		t.Error("tools not listed in sorted order")
	}
	for _, marker := range []string{"Thought:", "Action:", "Action Input:", "Observation"} {
		if !strings.Contains(got, marker) {
			t.Errorf("prompt missing protocol marker %q", marker)
		}
	}
}
