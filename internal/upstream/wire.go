package upstream

// Wire types for the generative-language generateContent endpoint.

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the request options this service uses.
// ResponseMIMEType "application/json" asks the model for structured
// JSON output.
type GenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type Request struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type Candidate struct {
	Content *Content `json:"content"`
}

type Response struct {
	Candidates []Candidate `json:"candidates"`
}
