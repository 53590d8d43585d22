package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/naics/internal/config"
	"github.com/agenthands/naics/internal/core/common"
	"github.com/agenthands/naics/internal/core/model"
	"github.com/agenthands/naics/internal/llm"
)

// ErrMalformedResponse is returned when a completion is not the expected JSON object.
var ErrMalformedResponse = errors.New("malformed model response")

type Classifier struct {
	LLM    llm.ChatClient
	Config config.LLMConfig
	Logger *zap.Logger
}

func NewClassifier(client llm.ChatClient, cfg config.LLMConfig, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		LLM:    client,
		Config: cfg,
		Logger: logger,
	}
}

// Classify asks for Config.Completions independent answers about company and
// decodes each one. searchContext is appended to the prompt when non-empty.
func (c *Classifier) Classify(ctx context.Context, company, searchContext string) ([]model.Reply, error) {
	texts, err := c.LLM.Complete(ctx, llm.ChatRequest{
		System:      systemPrompt,
		User:        userPrompt(company, searchContext),
		MaxTokens:   c.Config.MaxTokens,
		Temperature: c.Config.Temperature,
		N:           c.Config.Completions,
		JSON:        true,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoChoices) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil, err
	}

	replies := make([]model.Reply, 0, len(texts))
	for i, text := range texts {
		reply, err := DecodeReply(text)
		if err != nil {
			return nil, fmt.Errorf("choice %d: %w", i, err)
		}
		replies = append(replies, reply)
	}

	c.Logger.Debug("classified",
		zap.String("company", company),
		zap.Bool("with_context", searchContext != ""),
		zap.Int("choices", len(replies)))

	return replies, nil
}

// wireReply is the union of both reply shapes. Models are inconsistent about
// the code key, so the spellings seen in practice are all accepted.
type wireReply struct {
	SearchAPI   string   `json:"search_api"`
	Code        codeText `json:"NAICS_code"`
	CodeSpaced  codeText `json:"NAICS code"`
	CodeLower   codeText `json:"naics_code"`
	Description string   `json:"description"`
}

// codeText accepts a code written either as a JSON string or a bare number.
type codeText string

func (c *codeText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = codeText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("code must be a string or number: %s", b)
	}
	*c = codeText(n.String())
	return nil
}

// DecodeReply turns one completion text into a NeedsContext or FinalGuess.
func DecodeReply(text string) (model.Reply, error) {
	w, err := common.ParseJSON[wireReply](text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if q := strings.TrimSpace(w.SearchAPI); q != "" {
		return model.NeedsContext{Query: q}, nil
	}

	code := w.Code
	if code == "" {
		code = w.CodeSpaced
	}
	if code == "" {
		code = w.CodeLower
	}
	return model.FinalGuess{Guess: model.RawGuess{
		Code:        strings.TrimSpace(string(code)),
		Description: strings.TrimSpace(w.Description),
	}}, nil
}
