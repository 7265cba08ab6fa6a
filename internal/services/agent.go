package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// maxToolRounds caps tool-call round trips within a single user turn.
const maxToolRounds = 4

// AgentTool is one callable tool exposed to the model.
type AgentTool struct {
	Declaration *genai.FunctionDeclaration
	Run         func(args map[string]interface{}) string
}

// AgentService is a small conversational agent: the model may answer directly
// or call one of the registered tools, whose results are fed back until it
// produces text.
type AgentService struct {
	client *genai.Client
	chat   *genai.ChatSession
	tools  map[string]AgentTool
}

func NewAgentService(apiKey, modelName string, tools []AgentTool) (*AgentService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	byName := make(map[string]AgentTool, len(tools))
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		byName[t.Declaration.Name] = t
		declarations = append(declarations, t.Declaration)
	}
	if len(declarations) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: declarations}}
	}

	return &AgentService{
		client: client,
		chat:   model.StartChat(),
		tools:  byName,
	}, nil
}

func (a *AgentService) Close() {
	a.client.Close()
}

// RunTurn sends one user message and resolves any tool calls the model makes
// before returning its final text.
func (a *AgentService) RunTurn(ctx context.Context, input string) (string, error) {
	resp, err := a.chat.SendMessage(ctx, genai.Text(input))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		results := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			results = append(results, genai.FunctionResponse{
				Name:     call.Name,
				Response: map[string]interface{}{"result": a.dispatch(call)},
			})
		}

		resp, err = a.chat.SendMessage(ctx, results...)
		if err != nil {
			return "", fmt.Errorf("Gemini API error: %w", err)
		}
	}

	return extractText(resp), nil
}

func (a *AgentService) dispatch(call genai.FunctionCall) string {
	tool, ok := a.tools[call.Name]
	if !ok {
		return fmt.Sprintf("unknown tool %q", call.Name)
	}
	return tool.Run(call.Args)
}

func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if call, ok := part.(genai.FunctionCall); ok {
				calls = append(calls, call)
			}
		}
	}
	return calls
}

// CalculatorTool adds two numbers.
func CalculatorTool() AgentTool {
	return AgentTool{
		Declaration: &genai.FunctionDeclaration{
			Name:        "calculator",
			Description: "Add two numbers.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"a": {Type: genai.TypeNumber, Description: "First number"},
					"b": {Type: genai.TypeNumber, Description: "Second number"},
				},
				Required: []string{"a", "b"},
			},
		},
		Run: func(args map[string]interface{}) string {
			a, _ := args["a"].(float64)
			b, _ := args["b"].(float64)
			return fmt.Sprintf("The sum of %v and %v is %v", a, b, a+b)
		},
	}
}

// SayHelloTool greets a user by name.
func SayHelloTool() AgentTool {
	return AgentTool{
		Declaration: &genai.FunctionDeclaration{
			Name:        "say_hello",
			Description: "Greet a user by name.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString, Description: "Name of the person to greet"},
				},
				Required: []string{"name"},
			},
		},
		Run: func(args map[string]interface{}) string {
			name, _ := args["name"].(string)
			return fmt.Sprintf("Hello %s, I hope you are well today.", name)
		},
	}
}
