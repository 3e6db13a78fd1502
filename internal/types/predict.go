package types

// PredictRequest asks for a completion of the word being typed in a form field.
type PredictRequest struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

// PredictResponse carries the completion, empty when there is none.
type PredictResponse struct {
	Suggestion string `json:"suggestion"`
}
