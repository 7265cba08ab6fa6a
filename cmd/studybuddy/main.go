package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/techwithgen-io/beginner-ai-projects/internal/config"
	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
	"github.com/techwithgen-io/beginner-ai-projects/internal/repository"
	"github.com/techwithgen-io/beginner-ai-projects/internal/services"
)

// sessionWindow is how many recent messages travel with each request.
const sessionWindow = 10

// progressWindow is how many recent recaps /progress shows.
const progressWindow = 5

const helpText = `Commands:
  /help           show this help
  /profile        show your saved profile
  /set goal <x>   update your learning goal
  /set level <x>  update your experience level
  /set style <x>  update teaching style (simple, examples, steps, quiz)
  /add stuck <x>  save something you are stuck on
  /progress       show your recent session recaps
  /forget         delete your profile and start over
  quit            end the session (saves a recap)`

func main() {
	var memoryDir string

	root := &cobra.Command{
		Use:   "studybuddy",
		Short: "A personal AI study buddy that remembers you between sessions",
		Run: func(cmd *cobra.Command, args []string) {
			run(memoryDir)
		},
	}
	root.Flags().StringVar(&memoryDir, "memory-dir", "", "directory for the profile file (defaults to MEMORY_DIR)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(memoryDir string) {
	cfg := config.Load()
	if memoryDir == "" {
		memoryDir = cfg.MemoryDir
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("✗ GEMINI_API_KEY is required. Set it in your environment or .env file.")
	}

	gemini, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, 0.7, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer gemini.Close()

	profiles := repository.NewProfileRepo(memoryDir)
	profile := profiles.Load()

	reader := bufio.NewScanner(os.Stdin)

	if !services.IsComplete(profile) {
		profile = onboard(reader, profile)
		saveProfile(profiles, profile)
		fmt.Printf("\nNice to meet you, %s! Ask me anything. Type /help for commands.\n\n", profile.Name)
	} else {
		fmt.Printf("Welcome back, %s! Type /help for commands.\n\n", profile.Name)
	}

	var session []models.Message
	ctx := context.Background()

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
			finishSession(ctx, gemini, profiles, &profile, session)
			return
		}

		if strings.HasPrefix(input, "/") {
			handled, reset := handleCommand(reader, profiles, &profile, input)
			if !handled {
				fmt.Println("Unknown command. Type /help for the list.")
				continue
			}
			if reset {
				// Forgotten profile: start over in the same process.
				session = nil
				profile = onboard(reader, profile)
				saveProfile(profiles, profile)
				fmt.Printf("\nNice to meet you, %s! Ask me anything. Type /help for commands.\n\n", profile.Name)
			}
			continue
		}

		session = append(session, models.Message{Role: models.RoleUser, Content: input})

		reply, err := chat(ctx, gemini, profile, session)
		if err != nil {
			fmt.Printf("Sorry, something went wrong: %v\n", err)
			session = session[:len(session)-1]
			continue
		}

		// Sentinel suggestions update the profile; the cleaned reply is shown.
		display := services.ApplySuggestions(&profile, reply)
		saveProfile(profiles, profile)

		session = append(session, models.Message{Role: models.RoleAssistant, Content: reply})
		fmt.Printf("\nbuddy> %s\n\n", display)
	}
}

// chat sends the system prompt plus the recent session window. The prompt is
// rebuilt every turn so profile edits take effect immediately.
func chat(ctx context.Context, llm services.ChatModel, profile models.Profile, session []models.Message) (string, error) {
	messages := []models.Message{{Role: models.RoleSystem, Content: services.BuildSystemPrompt(profile)}}
	if len(session) > sessionWindow {
		session = session[len(session)-sessionWindow:]
	}
	return llm.Chat(ctx, append(messages, session...))
}

func onboard(reader *bufio.Scanner, profile models.Profile) models.Profile {
	fmt.Println("Let's set up your study buddy. A few quick questions:")

	profile.Name = ask(reader, "What's your name? ")
	profile.LearningGoal = ask(reader, "What are you learning? (your goal) ")
	profile.ExperienceLevel = ask(reader, "What's your experience level? (beginner/intermediate/advanced) ")

	for {
		token := ask(reader, "Teaching style? (simple, examples, steps, quiz) ")
		if style, ok := services.NormalizeStyle(token); ok {
			profile.Style = style
			break
		}
		fmt.Println("Please pick one of: simple, examples, steps, quiz")
	}

	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().Format("2006-01-02")
	}
	return profile
}

func ask(reader *bufio.Scanner, prompt string) string {
	for {
		fmt.Print(prompt)
		if !reader.Scan() {
			os.Exit(0)
		}
		if answer := strings.TrimSpace(reader.Text()); answer != "" {
			return answer
		}
	}
}

// handleCommand runs a slash command. handled is false for unknown commands;
// reset is true when the profile was forgotten and onboarding must run again.
func handleCommand(reader *bufio.Scanner, profiles *repository.ProfileRepo, profile *models.Profile, input string) (handled, reset bool) {
	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/help":
		fmt.Println(helpText)

	case "/profile":
		fmt.Println(services.FormatProfile(*profile))

	case "/set":
		field, value, _ := strings.Cut(rest, " ")
		value = strings.TrimSpace(value)
		if value == "" {
			fmt.Println("Usage: /set goal|level|style <value>")
			return true, false
		}
		switch field {
		case "goal":
			profile.LearningGoal = value
		case "level":
			profile.ExperienceLevel = value
		case "style":
			style, ok := services.NormalizeStyle(value)
			if !ok {
				fmt.Println("Unknown style. Pick one of: simple, examples, steps, quiz")
				return true, false
			}
			profile.Style = style
		default:
			fmt.Println("Usage: /set goal|level|style <value>")
			return true, false
		}
		saveProfile(profiles, *profile)
		fmt.Println("Saved.")

	case "/add":
		field, value, _ := strings.Cut(rest, " ")
		value = strings.TrimSpace(value)
		if field != "stuck" || value == "" {
			fmt.Println("Usage: /add stuck <thing you are stuck on>")
			return true, false
		}
		if !services.AddStuckPoint(profile, value) {
			fmt.Println("Already saved.")
			return true, false
		}
		saveProfile(profiles, *profile)
		fmt.Println("Saved. We'll work on it.")

	case "/progress":
		fmt.Println(progressReport(*profile))

	case "/forget":
		fmt.Print("Delete your profile? This cannot be undone. (yes/no) ")
		if !reader.Scan() || strings.TrimSpace(strings.ToLower(reader.Text())) != "yes" {
			fmt.Println("Kept your profile.")
			return true, false
		}
		profiles.Forget()
		*profile = models.Profile{}
		fmt.Println("Profile deleted. Let's set you up again.")
		return true, true

	default:
		return false, false
	}
	return true, false
}

// progressReport renders the most recent recaps, oldest of the window first.
func progressReport(p models.Profile) string {
	if len(p.Sessions) == 0 {
		return "No sessions recorded yet."
	}
	sessions := p.Sessions
	if len(sessions) > progressWindow {
		sessions = sessions[len(sessions)-progressWindow:]
	}
	lines := make([]string, 0, len(sessions))
	for _, s := range sessions {
		lines = append(lines, fmt.Sprintf("[%s] %s", s.Date, s.Summary))
	}
	return strings.Join(lines, "\n")
}

// finishSession asks the model for a recap and stores it in the profile before
// exiting. A failed recap never blocks quitting.
func finishSession(ctx context.Context, llm services.ChatModel, profiles *repository.ProfileRepo, profile *models.Profile, session []models.Message) {
	if len(session) == 0 {
		fmt.Println("Bye! Nothing to recap this time.")
		return
	}

	messages := []models.Message{{Role: models.RoleSystem, Content: services.BuildSystemPrompt(*profile)}}
	messages = append(messages, session...)
	messages = append(messages, models.Message{Role: models.RoleUser, Content: services.BuildRecapPrompt(*profile)})

	recap, err := llm.Chat(ctx, messages)
	if err != nil {
		fmt.Println("Bye! (couldn't build a recap this time)")
		return
	}

	services.AppendSession(profile, time.Now().Format("2006-01-02"), recap)
	saveProfile(profiles, *profile)

	fmt.Printf("\nSession recap:\n%s\n\nSee you next time, %s!\n", recap, profile.Name)
}

func saveProfile(profiles *repository.ProfileRepo, profile models.Profile) {
	if err := profiles.Save(profile); err != nil {
		log.Printf("failed to save profile: %v", err)
	}
}
