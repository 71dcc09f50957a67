package genai

import (
	"context"
	"time"

	genai "google.golang.org/genai"

	"github.com/fashio-ai/styling-api/internal/core/ports"
)

// outfitImageTool is the single capability the chat model may invoke
// instead of answering directly.
var outfitImageTool = &genai.FunctionDeclaration{
	Name:        "generateOutfitImage",
	Description: "Generates an image of an outfit based on a detailed description.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {
				Type:        genai.TypeString,
				Description: "A detailed description of the outfit, including clothing items, styles, colors, and setting.",
			},
		},
		Required: []string{"description"},
	},
}

// NewChatSession opens a stateful stylist conversation with the outfit
// image tool configured. Turn history lives inside the SDK chat.
func (g *Gateway) NewChatSession(ctx context.Context) (ports.ChatSession, error) {
	if err := g.ensureClient(); err != nil {
		return nil, err
	}

	chat, err := g.client.Chats.Create(ctx, g.cfg.TextModel,
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(chatInstruction, genai.RoleUser),
			Tools:             []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{outfitImageTool}}},
		},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &chatSession{chat: chat}, nil
}

type chatSession struct {
	chat *genai.Chat
}

func (s *chatSession) SendMessage(ctx context.Context, text string) (reply *ports.ChatReply, err error) {
	defer observe("chat", time.Now(), &err)

	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, err
	}
	return mapReply(resp), nil
}

func (s *chatSession) SendToolResult(ctx context.Context, result ports.ToolResult) (reply *ports.ChatReply, err error) {
	defer observe("chat_tool_result", time.Now(), &err)

	resp, err := s.chat.SendMessage(ctx, genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			ID:   result.CallID,
			Name: result.Name,
			Response: map[string]any{
				"success": result.Success,
				"message": result.Message,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return mapReply(resp), nil
}

func mapReply(resp *genai.GenerateContentResponse) *ports.ChatReply {
	reply := &ports.ChatReply{Text: resp.Text()}
	for _, fc := range resp.FunctionCalls() {
		reply.ToolCalls = append(reply.ToolCalls, ports.ToolCall{
			ID:   fc.ID,
			Name: fc.Name,
			Args: fc.Args,
		})
	}
	return reply
}
