package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/naics/internal/codes"
	"github.com/agenthands/naics/internal/core/classifier"
	"github.com/agenthands/naics/internal/core/model"
	"github.com/agenthands/naics/internal/core/reconcile"
	"github.com/agenthands/naics/internal/llm"
	"github.com/agenthands/naics/internal/search"
)

// ErrEmptyCompany is returned when the input line is blank.
var ErrEmptyCompany = errors.New("company name is empty")

// Classifier is the part of classifier.Classifier the detector needs.
type Classifier interface {
	Classify(ctx context.Context, company, searchContext string) ([]model.Reply, error)
}

type EventKind string

const (
	EventThinking     EventKind = "thinking"
	EventReceived     EventKind = "received"
	EventSearching    EventKind = "searching"
	EventSearchDone   EventKind = "search_done"
	EventSearchEmpty  EventKind = "search_empty"
	EventSearchFailed EventKind = "search_failed"
)

// Event is an interim status update of a running turn.
type Event struct {
	Kind     EventKind
	Query    string
	Snippets []model.Snippet
	Err      error
}

// Message is the status line shown to the user for the event.
func (e Event) Message() string {
	switch e.Kind {
	case EventThinking:
		return "Assistant is thinking..."
	case EventReceived:
		return "Response received!"
	case EventSearching:
		return fmt.Sprintf("Searching: %s", e.Query)
	case EventSearchDone:
		return "Search completed!"
	case EventSearchEmpty:
		return "No search results found. Will use knowledge of the LLM."
	case EventSearchFailed:
		return fmt.Sprintf("Search error: %v", e.Err)
	default:
		return string(e.Kind)
	}
}

// Outcome is the product of one turn.
type Outcome struct {
	TurnID   string          `json:"turn_id"`
	Results  []model.Result  `json:"results"`
	Snippets []model.Snippet `json:"search_results"`
	Searched bool            `json:"searched"`
}

type Detector struct {
	Classifier Classifier
	Search     search.Provider
	Codes      *codes.Store
	Logger     *zap.Logger
}

func NewDetector(c Classifier, s search.Provider, store *codes.Store, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		Classifier: c,
		Search:     s,
		Codes:      store,
		Logger:     logger,
	}
}

// Detect runs one turn: classify, search once if the model asks for context,
// classify again with that context, then reconcile the final guesses.
// report may be nil.
func (d *Detector) Detect(ctx context.Context, company string, report func(Event)) (*Outcome, error) {
	if report == nil {
		report = func(Event) {}
	}
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, ErrEmptyCompany
	}

	out := &Outcome{TurnID: uuid.New().String()}
	logger := d.Logger.With(zap.String("turn_id", out.TurnID), zap.String("company", company))

	report(Event{Kind: EventThinking})
	replies, err := d.Classifier.Classify(ctx, company, "")
	if err != nil {
		logger.Warn("classification failed", zap.Error(err))
		return nil, err
	}
	report(Event{Kind: EventReceived})
	if len(replies) == 0 {
		return nil, fmt.Errorf("%w: no choices", classifier.ErrMalformedResponse)
	}

	if nc, ok := replies[0].(model.NeedsContext); ok {
		out.Searched = true
		searchContext, snippets := d.gatherContext(ctx, logger, nc.Query, report)
		out.Snippets = snippets

		report(Event{Kind: EventThinking})
		replies, err = d.Classifier.Classify(ctx, company, searchContext)
		if err != nil {
			logger.Warn("classification with context failed", zap.Error(err))
			return nil, err
		}
		report(Event{Kind: EventReceived})
	}

	guesses := model.Guesses(replies)
	if len(guesses) == 0 {
		return nil, fmt.Errorf("%w: model kept requesting a search", classifier.ErrMalformedResponse)
	}
	if dropped := len(replies) - len(guesses); dropped > 0 {
		logger.Debug("dropped context requests", zap.Int("count", dropped))
	}

	results, err := reconcile.Reconcile(guesses, d.Codes.Remap(), d.Codes.Descriptions())
	if err != nil {
		logger.Warn("reconciliation failed", zap.Error(err))
		return nil, err
	}
	out.Results = results

	logger.Info("turn completed",
		zap.Bool("searched", out.Searched),
		zap.Int("guesses", len(guesses)),
		zap.Int("results", len(results)))

	return out, nil
}

// gatherContext never fails: a search error degrades to an empty context.
func (d *Detector) gatherContext(ctx context.Context, logger *zap.Logger, query string, report func(Event)) (string, []model.Snippet) {
	report(Event{Kind: EventSearching, Query: query})

	snippets, err := d.Search.Search(ctx, query)
	if err != nil {
		logger.Warn("search failed, continuing without context", zap.String("query", query), zap.Error(err))
		report(Event{Kind: EventSearchFailed, Query: query, Err: err})
		return "", nil
	}

	searchContext := search.JoinBodies(snippets)
	if strings.TrimSpace(searchContext) == "" {
		report(Event{Kind: EventSearchEmpty, Query: query})
		return "", snippets
	}

	report(Event{Kind: EventSearchDone, Query: query, Snippets: snippets})
	return searchContext, snippets
}

// UserMessage is the single line shown when a turn fails.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCompany):
		return "Please enter a company name."
	case errors.Is(err, reconcile.ErrMalformedGuess):
		return "Could not process results."
	case errors.Is(err, llm.ErrAuthentication):
		return err.Error()
	case errors.Is(err, classifier.ErrMalformedResponse):
		return "The model returned an unexpected response."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
