package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// SummaryFallback is returned whenever the inference backend fails or
// produces unusable output. Degraded UX, never a hard error.
const SummaryFallback = "Could not generate summary at this time."

type summaryPayload struct {
	Summary string `json:"summary"`
}

// SummarizeOpportunity condenses lengthy opportunity details into a
// short summary covering eligibility, benefits, deadline and the
// application link.
func (c *Client) SummarizeOpportunity(ctx context.Context, details string) string {
	prompt := fmt.Sprintf(`You are an AI assistant that summarizes job, scholarship, internship, fellowship, and grant opportunities.

Given the following opportunity details, create a concise summary that includes the key information, such as eligibility criteria, benefits, application deadlines, and the official application link. Make the summary SEO friendly using keywords such as job, scholarship, internship, fellowship, grant, career development and opportunity.

Opportunity Details:
%s

Respond ONLY with a JSON object of the form {"summary": "..."}.`, details)

	resp, err := c.GenerateCompletion(ctx, prompt, true)
	if err != nil {
		log.Printf("summary generation failed: %v", err)
		return SummaryFallback
	}

	summary, err := parseSummary(resp)
	if err != nil {
		log.Printf("summary parsing failed: %v", err)
		return SummaryFallback
	}
	return summary
}

func parseSummary(resp string) (string, error) {
	cleaned := stripCodeFences(resp)
	if obj, ok := firstJSONObject(cleaned); ok {
		cleaned = obj
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return "", fmt.Errorf("invalid summary payload: %w", err)
	}
	if strings.TrimSpace(payload.Summary) == "" {
		return "", fmt.Errorf("empty summary in payload")
	}
	return strings.TrimSpace(payload.Summary), nil
}
