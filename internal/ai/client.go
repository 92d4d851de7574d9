// Package ai generates natural-language insights over portfolio data
// using Google's Gemini API.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/propdesk/propdesk/internal/core/report"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the GenAI SDK behind the two prompts the dashboard needs.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// DashboardInsights summarizes a dashboard snapshot into a short
// plain-language briefing for a property manager.
func (c *Client) DashboardInsights(ctx context.Context, summary *report.DashboardSummary) (string, error) {
	snapshot, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"You are an assistant for a property management company. "+
			"Given this portfolio snapshot as JSON, write a brief summary "+
			"(at most five sentences) of the most important findings: open "+
			"maintenance workload, spending, and warranties that need "+
			"attention. Be concrete, cite the numbers, do not invent data.\n\n%s",
		snapshot,
	)

	return c.generate(ctx, prompt)
}

// ExpenseInsights comments on the per-property expense breakdown.
func (c *Client) ExpenseInsights(ctx context.Context, rep *report.ExpenseReport) (string, error) {
	snapshot, err := json.Marshal(rep)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"You are an assistant for a property management company. Given "+
			"this per-property expense report as JSON, point out the "+
			"properties driving cost and anything unusual, in at most "+
			"four sentences. Do not invent data.\n\n%s",
		snapshot,
	)

	return c.generate(ctx, prompt)
}

// PropertyInsights summarizes a single property's maintenance history and
// warranty position.
func (c *Client) PropertyInsights(ctx context.Context, overview *report.PropertyOverview) (string, error) {
	snapshot, err := json.Marshal(overview)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"You are an assistant for a property management company. Given "+
			"this snapshot of one property as JSON (request statuses, spend, "+
			"warranty bands), summarize its maintenance situation and flag "+
			"anything needing attention, in at most four sentences. Do not "+
			"invent data.\n\n%s",
		snapshot,
	)

	return c.generate(ctx, prompt)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no content returned")
	}
	return text, nil
}

func (c *Client) Name() string {
	return fmt.Sprintf("genai:%s", c.model)
}
