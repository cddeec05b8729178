package driven

// TokenCounter estimates the token count of a text in language-model
// token units. Estimates drive chunk bounds and context budgets.
type TokenCounter interface {
	Count(text string) int
}
