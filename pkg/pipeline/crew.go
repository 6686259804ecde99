package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"legal-agent-be/pkg/llm"
)

// Crew executes its tasks strictly in order. Each task sees the outputs of
// the tasks before it as context, mirroring a sequential agent process.
type Crew struct {
	Name        string
	Tasks       []Task
	provider    llm.LLMProvider
	artifactDir string
}

func NewCrew(name string, tasks []Task, provider llm.LLMProvider, artifactDir string) *Crew {
	return &Crew{
		Name:        name,
		Tasks:       tasks,
		provider:    provider,
		artifactDir: artifactDir,
	}
}

// Kickoff runs every task in order, substituting {key} placeholders from
// inputs into task descriptions. It stops at the first task error or when
// ctx is cancelled.
func (c *Crew) Kickoff(ctx context.Context, inputs map[string]string) (*RunResult, error) {
	if c.artifactDir != "" {
		if err := os.MkdirAll(c.artifactDir, 0o755); err != nil {
			return nil, fmt.Errorf("create artifact dir: %w", err)
		}
	}

	result := &RunResult{
		TaskOutputs: make(map[string]string, len(c.Tasks)),
		Artifacts:   make(map[string]string),
	}

	var previous []string
	for _, task := range c.Tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		output, err := c.runTask(ctx, task, inputs, previous)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Name, err)
		}

		result.TaskOutputs[task.Name] = output
		previous = append(previous, fmt.Sprintf("[%s]\n%s", task.Name, output))

		if task.OutputFile != "" {
			content := output
			if strings.HasSuffix(task.OutputFile, ".json") {
				content = StripCodeFence(content)
			}
			path := filepath.Join(c.artifactDir, task.OutputFile)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return nil, fmt.Errorf("write artifact %s: %w", task.OutputFile, err)
			}
			result.Artifacts[task.OutputFile] = path
		}

		result.FinalOutput = output
	}

	return result, nil
}

func (c *Crew) runTask(ctx context.Context, task Task, inputs map[string]string, previous []string) (string, error) {
	description := Substitute(task.Description, inputs)

	var user strings.Builder
	if len(previous) > 0 {
		user.WriteString("Context from earlier steps:\n\n")
		user.WriteString(strings.Join(previous, "\n\n"))
		user.WriteString("\n\n---\n\n")
	}
	user.WriteString(description)

	// One tool invocation per task, fed back into the prompt. The original
	// research agent ran with an iteration budget of one.
	if task.Agent.Tool != nil {
		toolInput, err := c.toolQuery(ctx, task, description, previous)
		if err == nil && strings.TrimSpace(toolInput) != "" {
			toolOut, toolErr := task.Agent.Tool.Run(ctx, strings.TrimSpace(toolInput))
			if toolErr != nil {
				toolOut = fmt.Sprintf("tool %s failed: %v", task.Agent.Tool.Name(), toolErr)
			}
			fmt.Fprintf(&user, "\n\nResults from the %s tool:\n%s", task.Agent.Tool.Name(), toolOut)
		}
	}

	if task.ExpectedOutput != "" {
		fmt.Fprintf(&user, "\n\nExpected output:\n%s", task.ExpectedOutput)
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt(task.Agent)},
		{Role: "user", Content: user.String()},
	}

	return c.provider.Chat(ctx, messages)
}

// toolQuery asks the model for a single short query to feed the task's tool.
func (c *Crew) toolQuery(ctx context.Context, task Task, description string, previous []string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("Formulate ONE concise search query (a single line, no quotes) for this task. ")
	prompt.WriteString("Reply with the query only.\n\nTask:\n")
	prompt.WriteString(description)
	if len(previous) > 0 {
		prompt.WriteString("\n\nMaterial so far:\n")
		prompt.WriteString(truncate(previous[len(previous)-1], 2000))
	}
	return c.provider.Generate(ctx, prompt.String(), llm.WithTemperature(0.2))
}

func systemPrompt(a *Agent) string {
	return fmt.Sprintf("You are a %s. %s\nYour goal: %s", a.Role, a.Backstory, a.Goal)
}

// Substitute replaces {key} placeholders with their input values.
func Substitute(template string, inputs map[string]string) string {
	out := template
	for key, value := range inputs {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// StripCodeFence removes a single leading and a single trailing fenced
// code block delimiter. Models occasionally wrap structured output in one.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			return ""
		}
	}
	if strings.HasSuffix(s, "```") {
		if idx := strings.LastIndex(s, "\n"); idx >= 0 {
			s = s[:idx]
		} else {
			return ""
		}
	}
	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
