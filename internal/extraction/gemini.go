package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/justmenoble-ux/mano-web-app/internal/categories"
)

// geminiExtractor calls Gemini with the statement text and the category
// taxonomy and expects a strict-JSON transaction list back.
type geminiExtractor struct {
	model string
}

// NewGeminiExtractor creates an Extractor backed by the given Gemini model.
func NewGeminiExtractor(model string) Extractor {
	return &geminiExtractor{model: model}
}

// wireTransaction mirrors the JSON shape the model is instructed to emit.
type wireTransaction struct {
	Date     string  `json:"date"`
	Vendor   string  `json:"vendor"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	IsShared bool    `json:"isShared"`
	Notes    string  `json:"notes"`
}

func (e *geminiExtractor) Extract(ctx context.Context, content string) ([]Candidate, error) {
	prompt, err := buildPrompt()
	if err != nil {
		return nil, fmt.Errorf("extract: building prompt: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("extract: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
				{Text: content},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("extract: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("extract: empty response from model")
	}

	var parsed struct {
		Transactions []wireTransaction `json:"transactions"`
	}
	clean := cleanModelJSON(rawText)
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("extract: unmarshal JSON: %w", err)
	}

	candidates := make([]Candidate, 0, len(parsed.Transactions))
	for _, tx := range parsed.Transactions {
		date, err := parseDate(tx.Date)
		if err != nil {
			return nil, fmt.Errorf("extract: transaction %q: %w", tx.Vendor, err)
		}

		category := tx.Category
		if !categories.Valid(category) {
			// The model occasionally invents labels; fall back to the
			// local keyword table before giving up on Miscellaneous.
			category = categories.Categorize(tx.Vendor)
		}

		candidates = append(candidates, Candidate{
			Date:     date,
			Vendor:   tx.Vendor,
			Amount:   toCents(tx.Amount),
			Category: category,
			IsShared: tx.IsShared,
			Notes:    tx.Notes,
		})
	}
	return candidates, nil
}

// buildPrompt assembles the parsing instructions with the category
// enumeration and keyword hints baked in.
func buildPrompt() (string, error) {
	hints, err := json.Marshal(categories.Keywords)
	if err != nil {
		return "", err
	}

	return "You are a financial statement parser. Extract transactions from the following text.\n" +
		"Output STRICT JSON only (no comments, no trailing commas, no extra text).\n" +
		"Output a JSON object with a \"transactions\" array.\n\n" +
		"Each transaction must have these fields:\n" +
		"- \"date\": string, ISO format \"YYYY-MM-DD\"\n" +
		"- \"vendor\": string\n" +
		"- \"amount\": number (always positive)\n" +
		"- \"category\": string, one of: " + strings.Join(categories.All, ", ") + "\n" +
		"- \"isShared\": boolean\n" +
		"- \"notes\": string or empty\n\n" +
		"Base categorization on these keywords where possible: " + string(hints) + "\n" +
		"If unsure, use '" + categories.Fallback + "'.\n\n" +
		"Return ONLY valid raw JSON.\n" +
		"Do NOT wrap the response in code fences.\n", nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only the outermost JSON object if junk remains around it.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
