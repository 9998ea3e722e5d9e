package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/avirtanen/siderovalley/internal/errors"
)

// Client is the OpenAI-backed Phraser.
type Client struct {
	client *openai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		client: openai.NewClient(apiKey),
	}
}

const maxTokens = 256

// systemPrompt builds the phrasing instruction. The fragment is pinned as
// the complete set of facts; everything else is voice.
func systemPrompt(req PhraseRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s, answering a field epidemiologist during an outbreak investigation.\n", req.NPCName, req.Role)
	if req.Persona != "" {
		fmt.Fprintf(&b, "Speaking style: %s\n", req.Persona)
	}
	if req.MoodInstruction != "" {
		fmt.Fprintf(&b, "Current mood: %s\n", req.MoodInstruction)
	}
	b.WriteString("Rephrase the following statement in your own voice, in one or two sentences. ")
	b.WriteString("It is the complete set of facts you may convey. ")
	b.WriteString("Do not add numbers, names, places, or any information beyond it.\n")
	fmt.Fprintf(&b, "Statement: %q", req.Fragment)
	return b.String()
}

func messages(req PhraseRequest) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
		{Role: openai.ChatMessageRoleUser, Content: req.Question},
	}
}

func (c *Client) Phrase(ctx context.Context, req PhraseRequest) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT3Dot5Turbo1106,
			MaxTokens: maxTokens,
			Messages:  messages(req),
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *Client) PhraseStream(ctx context.Context, req PhraseRequest) (<-chan string, error) {
	stream, err := c.client.CreateChatCompletionStream(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT3Dot5Turbo1106,
			MaxTokens: maxTokens,
			Messages:  messages(req),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "create chat completion stream")
	}

	chunks := make(chan string)
	go func() {
		defer close(chunks)
		defer stream.Close()
		for {
			response, err := stream.Recv()
			if err != nil {
				// io.EOF ends the stream; other errors also end it and the
				// handler falls back to the persisted transcript.
				return
			}
			if len(response.Choices) == 0 {
				continue
			}
			select {
			case chunks <- response.Choices[0].Delta.Content:
			case <-ctx.Done():
				return
			}
		}
	}()
	return chunks, nil
}
