package inference

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// OpenAICapability implements Capability against the OpenAI Responses API.
// Structured tasks (pattern-detection, entry-insights) force a JSON schema on
// the output; the rest return plain text.
type OpenAICapability struct {
	client  *openai.Client
	models  map[Task]string
	timeout time.Duration
}

// OpenAIConfig configures an OpenAICapability.
type OpenAIConfig struct {
	APIKey string
	// Model is the default model for all tasks.
	Model string
	// TaskModels overrides the default per task (e.g. a cheaper model for
	// risk screening).
	TaskModels map[Task]string
	// Timeout bounds each Invoke call. Zero means 30s.
	Timeout time.Duration
}

// NewOpenAICapability builds a capability from cfg.
func NewOpenAICapability(cfg OpenAIConfig) (*OpenAICapability, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("inference: missing API key")
	}
	if cfg.Model == "" {
		return nil, errors.New("inference: missing model")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	models := make(map[Task]string)
	for _, task := range []Task{TaskRiskAssessment, TaskMoodAnalysis, TaskPromptGeneration, TaskPatternDetection, TaskEntryInsights} {
		models[task] = cfg.Model
		if m, ok := cfg.TaskModels[task]; ok && m != "" {
			models[task] = m
		}
	}
	return &OpenAICapability{client: &client, models: models, timeout: timeout}, nil
}

// Invoke runs one inference task and returns the raw model text.
func (c *OpenAICapability) Invoke(ctx context.Context, task Task, input string) (string, error) {
	model, ok := c.models[task]
	if !ok {
		return "", NewError(task, KindUnavailable, errors.New("unknown task"))
	}
	instructions, ok := taskInstructions[task]
	if !ok {
		return "", NewError(task, KindUnavailable, errors.New("no instructions for task"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model:           model,
		MaxOutputTokens: openai.Int(1200),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if schema, ok := taskSchemas[task]; ok {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   schema.name,
					Schema: schema.schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		}
	}

	resp, err := c.callWithRetry(ctx, params)
	if err != nil {
		return "", NewError(task, classifyCallError(ctx, err), err)
	}
	out := strings.TrimSpace(resp.OutputText())
	if out == "" {
		return "", NewError(task, KindMalformed, errors.New("empty model output"))
	}
	return out, nil
}

// callWithRetry retries transient server errors with short backoff. Rate
// limits are not retried here: a chat turn cannot absorb minute-long waits,
// so they surface as unavailable and the caller applies its own policy.
func (c *OpenAICapability) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxAttempts = 3
	backoff := []time.Duration{500 * time.Millisecond, 2 * time.Second}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := c.client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if isRateLimitError(err) || !isServerError(err) || attempt == maxAttempts-1 {
			return nil, err
		}
		select {
		case <-time.After(backoff[attempt]):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func classifyCallError(ctx context.Context, err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnavailable
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "500") ||
		strings.Contains(s, "502") ||
		strings.Contains(s, "503") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "server_error")
}
