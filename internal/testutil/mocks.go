package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ExitError mimics a process that exited with a non-zero status
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the process exit code
func (e *ExitError) ExitCode() int {
	return e.Code
}

// MockRunner mocks an external process runner
type MockRunner struct {
	// Stdout returns the standard output for a given stdin payload
	Stdout func(stdin string) string
	Stderr string
	Err    error // returned from Run, e.g. an *ExitError
	Calls  []MockRunnerCall
}

// MockRunnerCall records one invocation of MockRunner
type MockRunnerCall struct {
	Name  string
	Args  []string
	Stdin string
}

// Run records the call and returns the configured output
func (m *MockRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, []byte, error) {
	input, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, err
	}
	m.Calls = append(m.Calls, MockRunnerCall{Name: name, Args: args, Stdin: string(input)})

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if m.Err != nil {
		return nil, []byte(m.Stderr), m.Err
	}

	out := ""
	if m.Stdout != nil {
		out = m.Stdout(string(input))
	}
	return []byte(out), []byte(m.Stderr), nil
}

// MockTranslator mocks a translation backend
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("Translate: %s (->%s)", text, targetLanguage))

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("[%s] %s", strings.ToLower(targetLanguage), text), nil
}

// Name returns the mock backend name
func (m *MockTranslator) Name() string {
	return "mock"
}
