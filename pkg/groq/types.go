package groq

// Config holds Groq client configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Message is a chat message in OpenAI format.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// Request represents a Groq generation request.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Response represents a Groq generation response.
type Response struct {
	Content string
	Usage   Usage
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
