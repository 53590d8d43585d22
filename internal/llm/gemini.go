package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, req ChatRequest) ([]string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	model.SetTemperature(req.Temperature)
	model.SetCandidateCount(int32(req.completions()))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return nil, mapGeminiError(err)
	}

	var out []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil || len(cand.Content.Parts) == 0 {
			continue
		}
		if txt, ok := cand.Content.Parts[0].(genai.Text); ok {
			out = append(out, string(txt))
		}
	}

	if len(out) == 0 {
		return nil, ErrNoChoices
	}
	return out, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func mapGeminiError(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPCode() == http.StatusUnauthorized || apiErr.HTTPCode() == http.StatusForbidden {
			return fmt.Errorf("%w: %s", ErrAuthentication, apiErr.Error())
		}
		if st := apiErr.GRPCStatus(); st != nil && (st.Code() == codes.Unauthenticated || st.Code() == codes.PermissionDenied) {
			return fmt.Errorf("%w: %s", ErrAuthentication, st.Message())
		}
		if apiErr.Reason() == "API_KEY_INVALID" {
			return fmt.Errorf("%w: %s", ErrAuthentication, apiErr.Error())
		}
	}
	return fmt.Errorf("gemini generate content: %w", err)
}
