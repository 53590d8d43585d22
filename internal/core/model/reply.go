package model

// Reply is the decoded content of one completion choice.
// It is either NeedsContext or FinalGuess.
type Reply interface {
	isReply()
}

// NeedsContext is returned when the model asks for a web search before answering.
type NeedsContext struct {
	Query string `json:"search_api"`
}

// FinalGuess carries a classification the model committed to.
type FinalGuess struct {
	Guess RawGuess
}

func (NeedsContext) isReply() {}
func (FinalGuess) isReply() {}

// Guesses returns the final guesses in reply order, dropping context requests.
func Guesses(replies []Reply) []RawGuess {
	var out []RawGuess
	for _, r := range replies {
		if g, ok := r.(FinalGuess); ok {
			out = append(out, g.Guess)
		}
	}
	return out
}
