// Package pipeline runs an ordered sequence of prompted agent tasks against an
// LLM provider, producing file artifacts consumed by downstream delivery.
package pipeline

import (
	"context"
)

// Tool is an external capability an agent may invoke once per task
// (web search, etc.). Tools are configuration, not control flow.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context, input string) (string, error)
}

// Agent is a declarative role definition. The reasoning itself is owned by
// the model; we only supply the persona and an optional tool.
type Agent struct {
	Role      string
	Goal      string
	Backstory string
	Tool      Tool
}

// Task is one ordered step of a crew run. Description may contain
// {placeholder} variables resolved from the kickoff inputs.
type Task struct {
	Name           string
	Description    string
	ExpectedOutput string
	Agent          *Agent
	// OutputFile, when set, writes the task output into the run's
	// artifact directory under this name.
	OutputFile string
}

// RunResult is what a completed crew run hands back to the caller.
type RunResult struct {
	FinalOutput string
	// TaskOutputs maps task name to its raw model output.
	TaskOutputs map[string]string
	// Artifacts maps artifact file name to its absolute path on disk.
	Artifacts map[string]string
}
