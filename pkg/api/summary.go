package api

// SummaryRequest is the body accepted by POST /api/ai.
// Both fields are optional; an absent sessionData is summarised as "".
type SummaryRequest struct {
	SessionData string `json:"sessionData"`
	Provider    string `json:"provider,omitempty"`
}

// SummaryResponse is returned when one provider produced usable text.
type SummaryResponse struct {
	Provider string `json:"provider"`
	Text     string `json:"text"`
}

// FailureResponse keeps the legacy error envelope of the summary endpoint.
type FailureResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// SessionReport is the structured form of a remote supervision session.
// It is rendered into session data before being summarised.
type SessionReport struct {
	SiteID         string   `json:"siteId" binding:"required"`
	SiteName       string   `json:"siteName" binding:"required"`
	SiteType       string   `json:"siteType" binding:"required"`
	Duration       int      `json:"duration" binding:"gte=0"`
	Annotations    []string `json:"annotations"`
	ExpertName     string   `json:"expertName" binding:"required"`
	TechnicianName string   `json:"technicianName" binding:"required"`
	Provider       string   `json:"provider,omitempty" binding:"omitempty,oneof=gemini openai anthropic groq openrouter"`
}

// RecommendationRequest asks for maintenance recommendations for a set of equipment.
type RecommendationRequest struct {
	Equipment []string `json:"equipment" binding:"required,min=1,dive,required"`
	Issue     string   `json:"issue" binding:"required"`
	Provider  string   `json:"provider,omitempty" binding:"omitempty,oneof=gemini openai anthropic groq openrouter"`
}

// ProviderInfo describes one configured provider. Credentials are never exposed.
type ProviderInfo struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	Configured bool   `json:"configured"`
	// Position in the fallback order, -1 when only reachable by pinning.
	Position int `json:"position"`
}

// ProvidersResponse lists the fallback order and the known providers.
type ProvidersResponse struct {
	Object    string         `json:"object"`
	Order     []string       `json:"order"`
	Providers []ProviderInfo `json:"data"`
}
