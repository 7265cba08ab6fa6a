package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/techwithgen-io/beginner-ai-projects/internal/config"
	"github.com/techwithgen-io/beginner-ai-projects/internal/services"
)

func main() {
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("✗ GEMINI_API_KEY is required. Set it in your environment or .env file.")
	}

	agent, err := services.NewAgentService(cfg.GeminiAPIKey, cfg.GeminiModel, []services.AgentTool{
		services.CalculatorTool(),
		services.SayHelloTool(),
	})
	if err != nil {
		log.Fatalf("✗ Agent initialization failed: %v", err)
	}
	defer agent.Close()

	fmt.Println("Agent ready. It can add numbers and say hello. Type quit to leave.")

	ctx := context.Background()
	reader := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("you> ")
		if !reader.Scan() {
			break
		}
		input := strings.TrimSpace(reader.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			fmt.Println("Bye!")
			return
		}

		reply, err := agent.RunTurn(ctx, input)
		if err != nil {
			fmt.Printf("Sorry, something went wrong: %v\n", err)
			continue
		}
		fmt.Printf("\nagent> %s\n\n", reply)
	}
}
