package ai

import "context"

// Translator is the translation backend boundary: one text blob in, the
// translated text out.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Noop echoes its input unchanged; it lets the pipeline run end to end
// without spending backend quota.
type Noop struct{}

func (Noop) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return text, nil
}
