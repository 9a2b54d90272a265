package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/filechat"
	"github.com/fwojciec/filechat/chat"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Cache    filechat.Cache
	Sessions filechat.SessionService
	Loop     *chat.Loop
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config        string   `name:"config" env:"OPENAI_CONFIG_CACHE" default:"config.json" help:"Identifier cache path; .db, .sqlite or .sqlite3 selects SQLite"`
	Paths         string   `name:"paths" env:"DEFAULT_PATHS" help:"Comma-separated directories or files to index"`
	Extensions    []string `name:"extensions" default:".docx,.pdf,.pptx" help:"File extensions to index"`
	IndexName     string   `name:"index-name" env:"VECTOR_STORE_NAME" default:"AssistantRAGFileStore" help:"Name of the remote index"`
	AssistantName string   `name:"assistant-name" env:"ASSISTANT_NAME" default:"File Assistant" help:"Name of the remote assistant"`
	Instructions  string   `name:"instructions" env:"DEFAULT_INSTRUCTIONS" help:"Assistant instructions (defaults to built-in text)"`
	Model         string   `name:"model" env:"OPENAI_MODEL" default:"gpt-4o" help:"Model used by the assistant"`
	APIKey        string   `name:"api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	BaseURL       string   `name:"base-url" env:"OPENAI_BASE_URL" default:"https://api.openai.com/v1" help:"OpenAI API base URL"`
	Prompt        string   `name:"prompt" help:"Chat prompt (default \"You: \")"`
	LogFile       string   `name:"log-file" default:"filechat.log" help:"Log file path, or - for stderr"`
	Verbose       bool     `short:"v" help:"Log debug output"`

	Chat   ChatCmd   `cmd:"" default:"1" help:"Chat with your documents (default)"`
	Ask    AskCmd    `cmd:"" help:"Ask a single question and exit"`
	Index  IndexCmd  `cmd:"" help:"Discard the thread and upload files again"`
	Reset  ResetCmd  `cmd:"" help:"Delete all remote assistants, files and indexes"`
	Status StatusCmd `cmd:"" help:"Show cached identifiers"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question to ask about your documents"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// ResetCmd is the "reset" subcommand.
type ResetCmd struct {
	Force bool `help:"Confirm deletion"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
