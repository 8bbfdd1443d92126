package config

import "time"

type Enrichment struct{}

var _ EnrichmentConfig = Enrichment{}

func (Enrichment) GetOpenAIAPIKey() string {
	return GetEnv("OPENAI_API_KEY", "")
}

func (Enrichment) GetOpenAIModel() string {
	return GetEnv("OPENAI_MODEL", "gpt-4o")
}

func (Enrichment) GetOpenAIBaseURL() string {
	return GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")
}

func (Enrichment) GetClaudeAPIKey() string {
	return GetEnv("CLAUDE_API_KEY", "")
}

func (Enrichment) GetClaudeModel() string {
	return GetEnv("CLAUDE_MODEL", "claude-3-haiku-20240307")
}

func (Enrichment) GetAnthropicBaseURL() string {
	return GetEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com/v1")
}

func (Enrichment) GetWikipediaAPIURL() string {
	return GetEnv("WIKIPEDIA_API_URL", "https://en.wikipedia.org/w/api.php")
}

// GetCollaboratorTimeout is zero unless set; zero means the request context alone bounds the call
func (Enrichment) GetCollaboratorTimeout() time.Duration {
	return GetEnvDuration("COLLABORATOR_TIMEOUT", 0)
}
