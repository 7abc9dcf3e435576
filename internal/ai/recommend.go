package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jobsyde/jobsyde/internal/models"
)

// RecommendOpportunities asks the model to pick the postings matching a
// free-text user profile. The model answers with a plain list of titles
// that is matched back to candidates by substring containment; the
// matching is heuristic and may under- or over-match. Any failure
// returns an empty list.
func (c *Client) RecommendOpportunities(ctx context.Context, profile string, candidates []models.Opportunity) []models.Opportunity {
	if len(candidates) == 0 {
		return []models.Opportunity{}
	}

	blocks := make([]string, 0, len(candidates))
	for _, o := range candidates {
		blocks = append(blocks, fmt.Sprintf("Title: %s\nSummary: %s\n", o.Title, o.Summary))
	}

	prompt := fmt.Sprintf(`You are an expert career advisor specializing in recommending opportunities to users based on their profile.

You will use the user profile and the list of opportunities to recommend the most relevant opportunities to the user. Answer with one recommended opportunity title per line, prefixed with "- ". Do not add commentary.

User Profile: %s

Opportunities:
%s

Recommendations:`, profile, strings.Join(blocks, "\n---\n"))

	resp, err := c.GenerateCompletion(ctx, prompt, false)
	if err != nil {
		log.Printf("recommendation generation failed: %v", err)
		return []models.Opportunity{}
	}

	return MatchRecommendations(resp, candidates)
}

// MatchRecommendations maps the model's free-text list back to candidate
// postings: a candidate is kept when its title contains one of the
// recommended lines.
func MatchRecommendations(response string, candidates []models.Opportunity) []models.Opportunity {
	titles := recommendationLines(response)
	if len(titles) == 0 {
		return []models.Opportunity{}
	}

	matched := []models.Opportunity{}
	for _, o := range candidates {
		for _, t := range titles {
			if strings.Contains(o.Title, t) {
				matched = append(matched, o)
				break
			}
		}
	}
	return matched
}

func recommendationLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
