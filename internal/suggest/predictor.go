package suggest

import "context"

// Predictor completes the word fragment being typed in a field.
// An empty result means no suggestion.
type Predictor interface {
	Predict(ctx context.Context, field, text string) (string, error)
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(ctx context.Context, field, text string) (string, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, field, text string) (string, error) {
	return f(ctx, field, text)
}
