// Package llm defines the text-completion capability consumed by specification
// extraction, plus adapters for clients that expose chat-style or single-call
// interfaces with loosely shaped responses.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Completer submits a prompt and returns the raw completion text.
type Completer interface {
	Submit(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Submit calls f(ctx, prompt).
func (f CompleterFunc) Submit(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chatter is a chat-style client. The response may be any shape accepted by ContentOf.
type Chatter interface {
	Chat(ctx context.Context, messages []Message) (any, error)
}

// Caller is a single-call client. The response may be any shape accepted by ContentOf.
type Caller interface {
	Complete(ctx context.Context, prompt string) (any, error)
}

// FromChat wraps a chat-style client as a Completer. The prompt is sent as a
// single user message.
func FromChat(c Chatter) Completer {
	return CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		resp, err := c.Chat(ctx, []Message{{Role: "user", Content: prompt}})
		if err != nil {
			return "", err
		}
		return ContentOf(resp), nil
	})
}

// FromCall wraps a single-call client as a Completer.
func FromCall(c Caller) Completer {
	return CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		resp, err := c.Complete(ctx, prompt)
		if err != nil {
			return "", err
		}
		return ContentOf(resp), nil
	})
}

// ContentOf extracts completion text from a loosely shaped response:
// a plain string, an object with a "content" field, or an object whose
// "choices[0]" is shaped {message:{content}} or {text}. Byte slices are decoded
// as JSON when possible. Any other value is formatted with fmt.Sprint.
func ContentOf(resp any) string {
	switch v := resp.(type) {
	case string:
		return v
	case []byte:
		var decoded any
		if err := json.Unmarshal(v, &decoded); err != nil {
			return string(v)
		}
		if _, ok := decoded.(map[string]any); !ok {
			return string(v)
		}
		return ContentOf(decoded)
	case map[string]any:
		if content, ok := v["content"]; ok {
			return stringOf(content)
		}
		if choices, ok := v["choices"].([]any); ok && len(choices) > 0 {
			if text := choiceText(choices[0]); text != "" {
				return text
			}
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
	return fmt.Sprint(resp)
}

func choiceText(choice any) string {
	c, ok := choice.(map[string]any)
	if !ok {
		return ""
	}
	if msg, ok := c["message"].(map[string]any); ok {
		if content := stringOf(msg["content"]); content != "" {
			return content
		}
	}
	return stringOf(c["text"])
}

func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// Conversation is a multi-message exchange returning the assistant reply text.
type Conversation interface {
	Converse(ctx context.Context, messages []Message) (string, error)
}
