package translation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"codeberg.org/snonux/pdftranslate/internal/domain"
)

// DefaultOllamaModel is the model passed to `ollama run`
const DefaultOllamaModel = "llama3"

// Runner runs an external process with stdin and captures its output
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs processes with os/exec
type ExecRunner struct{}

// Run executes name with args, feeding stdin and capturing both streams
func (ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// exitCoder is implemented by *exec.ExitError
type exitCoder interface {
	ExitCode() int
}

// OllamaTranslator translates by piping a prompt into an external process
type OllamaTranslator struct {
	command string
	args    []string
	runner  Runner
}

// NewOllamaTranslator creates a translator that runs config.Command
func NewOllamaTranslator(config *Config) *OllamaTranslator {
	command := config.Command
	if command == "" {
		command = "ollama"
	}

	model := config.Model
	if model == "" {
		model = DefaultOllamaModel
	}

	args := config.Args
	if len(args) == 0 {
		args = []string{"run", model}
	}

	runner := config.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	return &OllamaTranslator{
		command: command,
		args:    args,
		runner:  runner,
	}
}

// Translate sends the prompt on stdin and returns the trimmed stdout
func (o *OllamaTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := BuildPrompt(text, targetLanguage)

	stdout, stderr, err := o.runner.Run(ctx, strings.NewReader(prompt), o.command, o.args...)
	if err != nil {
		errOutput := strings.TrimSpace(string(stderr))

		var exitErr exitCoder
		if errors.As(err, &exitErr) {
			return "", domain.NewTranslationError(
				fmt.Sprintf("%s translation failed (exit status %d)", o.command, exitErr.ExitCode()), errOutput, err)
		}
		return "", domain.NewTranslationError(fmt.Sprintf("failed to run %s", o.command), errOutput, err)
	}

	return strings.TrimSpace(string(stdout)), nil
}

// Name returns the backend name
func (o *OllamaTranslator) Name() string {
	return o.command
}

// IsAvailable checks that the command can be found in PATH
func (o *OllamaTranslator) IsAvailable() error {
	if _, err := exec.LookPath(o.command); err != nil {
		return domain.NewConfigError(fmt.Sprintf("%s is not installed or not in PATH", o.command), err)
	}
	return nil
}
