package models

// InterestRequest is the payload sent to the recommendations endpoint.
type InterestRequest struct {
	Interests string `json:"interests"`
}

// CareerEntry is a single suggested career path.
type CareerEntry struct {
	Career  string   `json:"career"`
	Studies []string `json:"studies"`
	Icon    string   `json:"icon"`
}

// HobbyEntry is a single suggested hobby.
type HobbyEntry struct {
	Hobby       string `json:"hobby"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// RecommendationResult is the structured object the model is asked to
// produce. Nil slices after unmarshal mean the property was missing or
// null in the model output.
type RecommendationResult struct {
	Careers []CareerEntry `json:"careers"`
	Hobbies []HobbyEntry  `json:"hobbies"`
}
