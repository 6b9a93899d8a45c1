package entity

// EmotionResult is the classification output for a single text.
type EmotionResult struct {
	Text             string             `json:"text"`
	Emotion          string             `json:"emotion"`
	Confidence       float64            `json:"confidence"`
	AllProbabilities map[string]float64 `json:"all_probabilities"`
}

// MriResult is the binary screening output for one scan.
// RawLabel is "yes" when ProbYes >= 0.5, "no" otherwise; Label is the
// human-readable mapping ("Tumor" / "Normal").
type MriResult struct {
	RawLabel string  `json:"raw_label"`
	Label    string  `json:"label"`
	ProbYes  float64 `json:"prob_yes"`
}

// CopingResult always carries a "strategies" key. Strategies is a
// []string when the upstream model returned the requested JSON shape,
// and the raw reply string when it did not.
type CopingResult struct {
	Strategies any `json:"strategies"`
}

// ImageResult carries the generated image URL. No image bytes are
// fetched server-side; the client resolves the URL itself.
type ImageResult struct {
	ImageURL string `json:"image_url"`
}

// ChatResult is one assistant reply.
type ChatResult struct {
	Reply string `json:"reply"`
}

// Turn is one completed exchange in a conversation.
type Turn struct {
	User      string
	Assistant string
}
