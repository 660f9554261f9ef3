package driven

// PromptStore provides access to the prompt texts sent to the model.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt for the given name.
	// Unknown names return an error.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptPolicy is the behavioural policy preamble prepended to every answer.
	PromptPolicy = "policy"

	// PromptQueryRewrite asks the model to turn a conversation into a search query.
	// Sent as the final user message; it has no placeholders.
	PromptQueryRewrite = "query_rewrite"

	// PromptEnforcement is the suffix restating the document-only rules.
	PromptEnforcement = "enforcement"

	// PromptAnswerTemplate frames the system prompt. It contains the
	// {policy} and {context} placeholders.
	PromptAnswerTemplate = "answer_template"
)
