// Package translation translates paragraph text through a language model.
// The default backend pipes a prompt into a local `ollama run` process;
// OpenAI-compatible and Gemini HTTP backends implement the same
// Translator interface.
package translation
