package llm

// prompts.go keeps the summarization prompts in one place so they can be
// tweaked without touching the client code.

const (
	// SystemPrompt fixes the model's role as a conversation summarizer.
	SystemPrompt = "You are a helpful assistant that summarizes chat conversations concisely."

	// SummaryRequestPrefix precedes the transcript in the user message.
	SummaryRequestPrefix = "Summarize this conversation in a concise way:\n\n"
)
