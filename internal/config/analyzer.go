package config

import "time"

// Analyzer configures the optional LLM sanity check. The endpoint is any
// OpenAI-compatible chat-completions API (Groq, OpenAI, a local Ollama).
type Analyzer struct {
	APIKey         string        `env:"ANALYZER_API_KEY" json:"-"`
	BaseURL        string        `env:"ANALYZER_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Model          string        `env:"ANALYZER_MODEL" envDefault:"llama-3.3-70b-versatile"`
	RequestTimeout time.Duration `env:"ANALYZER_TIMEOUT" envDefault:"30s"`
}
