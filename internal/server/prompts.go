// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Each prompt is rendered fresh per request; no session state is kept
// between calls.

const analysisStructure = `Present your analysis with the following structure:
1. Executive Summary: 3-5 sentence overview of key contributions
2. Detailed Analysis: Following the specific focus requested
3. Visual Breakdown: Describe key figures/tables and their significance
4. Related Work Map: Position this paper within the research landscape
5. Implementation Notes: Practical considerations for applying these findings`

var expertiseGuidance = map[string]string{
	"beginner":     "Explain concepts from first principles and define technical terms on first use.",
	"intermediate": "Assume working familiarity with the field; focus on what is novel here.",
	"expert":       "Skip background; concentrate on methodology details, limitations, and open problems.",
}

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "deep-paper-analysis",
		Description: "Analyze an arXiv paper in depth: contributions, methodology, figures, related work, and practical implications.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "paper_id",
				Description: "arXiv paper ID (e.g. 2301.07041)",
				Required:    true,
			},
			{
				Name:        "expertise_level",
				Description: "Reader expertise: beginner, intermediate, or expert (default intermediate)",
			},
		},
	}, s.handleDeepPaperAnalysis)
}

func (s *Server) handleDeepPaperAnalysis(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	paperID := req.Params.Arguments["paper_id"]
	if paperID == "" {
		return nil, fmt.Errorf("missing required argument: paper_id")
	}

	level := req.Params.Arguments["expertise_level"]
	guidance, ok := expertiseGuidance[level]
	if !ok {
		guidance = expertiseGuidance["intermediate"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze paper %s.\n\n", paperID)
	fmt.Fprintf(&b, "First retrieve its content with the get_paper tool (download_paper first if it is not yet stored).\n\n")
	fmt.Fprintf(&b, "%s\n\n", guidance)
	fmt.Fprintf(&b, "Reference specific findings and methodologies from the paper.\n\n")
	b.WriteString(analysisStructure)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Deep analysis of paper %s", paperID),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: b.String()},
			},
		},
	}, nil
}
