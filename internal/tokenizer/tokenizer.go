// Package tokenizer estimates token counts for digest text.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// defaultModel is the tokenizer model used when none is requested.
	defaultModel = "gpt-4o"
	// defaultEncodingName is the fallback encoding for models unknown to tiktoken.
	defaultEncodingName = "cl100k_base"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// openAICounter counts tokens with a tiktoken encoding.
type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name returns the encoding or model name backing the counter.
func (counter openAICounter) Name() string {
	return counter.name
}

// CountString returns the number of tokens in input.
func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}

// NewCounter returns a Counter for the requested model, falling back to the
// cl100k_base encoding when the model is unknown to tiktoken.
func NewCounter(modelName string) (Counter, error) {
	requestedModel := strings.ToLower(strings.TrimSpace(modelName))
	if requestedModel == "" {
		requestedModel = defaultModel
	}

	modelEncoding, encodingError := tiktoken.EncodingForModel(requestedModel)
	if encodingError == nil && modelEncoding != nil {
		return openAICounter{encoding: modelEncoding, name: requestedModel}, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, fmt.Errorf("initializing fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallbackEncoding, name: defaultEncodingName}, nil
}
