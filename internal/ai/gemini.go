package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "google.golang.org/genai"
)

const DefaultModel = "gemini-flash-latest"

// styleGuide keeps translations faithful to the source structure.
const styleGuide = `- Tone: Professional and serious.
- Structure: Keep sentence lengths as close to the original as possible.
- Constraint: Do not add, remove, or summarize sentences.`

type Gemini struct {
	client   *genai.Client
	model    string
	Glossary string // optional terminology block folded into every prompt
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing API key: pass --key or set GEMINI_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, model: model}, nil
}

// LoadGlossary reads an optional terminology file. A missing file is not an
// error; the glossary is simply omitted from prompts.
func (g *Gemini) LoadGlossary(path string) {
	b, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(b))) == 0 {
		return
	}
	g.Glossary = strings.TrimSpace(string(b))
}

// Translate submits one segment's text and returns the model output
// verbatim. An empty or blocked response is an error so the caller never
// persists a hollow artifact.
func (g *Gemini) Translate(ctx context.Context, text, targetLang string) (string, error) {
	prompt := g.buildPrompt(text, targetLang)
	res, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	out := res.Text()
	if strings.TrimSpace(out) == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return out, nil
}

func (g *Gemini) buildPrompt(text, targetLang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following to %s.\n\nSTYLE GUIDE:\n%s\n", targetLang, styleGuide)
	if g.Glossary != "" {
		fmt.Fprintf(&b, "\nGLOSSARY (use these term translations):\n%s\n", g.Glossary)
	}
	b.WriteString("\nCONTENT:\n")
	b.WriteString(text)
	return b.String()
}
