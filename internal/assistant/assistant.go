// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package assistant answers residents' questions about neighborhood
// services. It combines the site configuration, an optional web search for
// procedural questions, and an OpenAI-compatible chat model. The assistant
// degrades gracefully: when the model or search is unavailable residents get
// a polite fallback message, never an error page.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/smartwarga/smartwarga-go/internal/i18n"
	"github.com/smartwarga/smartwarga-go/internal/model"
	"github.com/smartwarga/smartwarga-go/internal/service"
	"github.com/smartwarga/smartwarga-go/internal/store"
)

// ChatClient completes a single-turn chat exchange.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIChat is the production ChatClient backed by the OpenAI API or any
// compatible endpoint.
type OpenAIChat struct {
	client openai.Client
	model  string
}

// NewOpenAIChat creates a chat client. An empty baseURL uses the OpenAI API.
func NewOpenAIChat(apiKey, baseURL, chatModel string) *OpenAIChat {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIChat{
		client: openai.NewClient(opts...),
		model:  chatModel,
	}
}

// Complete implements ChatClient.
func (c *OpenAIChat) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Reply is the assistant's response to one question.
type Reply struct {
	// Text is the model's answer as plain Markdown.
	Text string `json:"text"`

	// HTML is the sanitized, rendered answer.
	HTML string `json:"html"`

	// Answered is false when the fallback message was served.
	Answered bool `json:"-"`
}

// Service wires the chat model, the optional search provider, and the site
// configuration together.
type Service struct {
	chat   ChatClient
	search SearchProvider
	config *service.ConfigService
	log    *slog.Logger
}

// NewService creates the assistant. search may be nil to disable web lookups.
func NewService(chat ChatClient, search SearchProvider, config *service.ConfigService, log *slog.Logger) *Service {
	return &Service{chat: chat, search: search, config: config, log: log}
}

// Answer responds to a resident's question in the given language.
func (s *Service) Answer(ctx context.Context, question, lang string) (Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, &service.ValidationError{Field: "message", Reason: "required"}
	}

	var cfg store.RTConfig
	if loaded, err := s.config.Get(ctx); err == nil {
		cfg = loaded
	} else if !errors.Is(err, service.ErrNotFound) {
		s.log.Warn("assistant config load failed", "error", err)
	}

	var webContext string
	if s.search != nil && needsSearch(question) {
		result, err := s.search.Search(ctx, question)
		if err != nil {
			s.log.Warn("assistant search failed", "error", err)
		} else {
			webContext = result
		}
	}

	answer, err := s.chat.Complete(ctx, buildSystemPrompt(cfg, webContext), question)
	if err != nil {
		s.log.Error("assistant completion failed", "error", err)
		return s.fallback(lang), nil
	}

	rendered, err := renderMarkdown(answer)
	if err != nil {
		s.log.Error("assistant render failed", "error", err)
		return s.fallback(lang), nil
	}

	return Reply{Text: answer, HTML: rendered, Answered: true}, nil
}

func (s *Service) fallback(lang string) Reply {
	msg := i18n.T(lang, "assistant.fallback")
	return Reply{Text: msg, HTML: msg, Answered: false}
}

// buildSystemPrompt describes the neighborhood services so the model stays
// on topic and refers residents to the right contact for anything else.
func buildSystemPrompt(cfg store.RTConfig, webContext string) string {
	var sb strings.Builder

	appName := cfg.AppName
	if appName == "" {
		appName = "SmartWarga"
	}

	fmt.Fprintf(&sb, "Kamu adalah asisten layanan warga untuk aplikasi %s", appName)
	if cfg.RTName != "" {
		fmt.Fprintf(&sb, " di lingkungan %s", cfg.RTName)
	}
	sb.WriteString(".\n\n")

	sb.WriteString("Jenis surat yang dapat diajukan warga:\n")
	for _, lt := range model.LetterTypes {
		fmt.Fprintf(&sb, "- %s\n", lt)
	}

	sb.WriteString("\nStatus pengajuan surat: ")
	sb.WriteString(strings.Join(model.ValidRequestStatuses, ", "))
	sb.WriteString(".\n")

	if cfg.RTWhatsapp != "" || cfg.RTEmail != "" {
		sb.WriteString("\nKontak pengurus RT: ")
		if cfg.RTWhatsapp != "" {
			fmt.Fprintf(&sb, "WhatsApp %s", cfg.RTWhatsapp)
		}
		if cfg.RTEmail != "" {
			if cfg.RTWhatsapp != "" {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "email %s", cfg.RTEmail)
		}
		sb.WriteString(".\n")
	}

	sb.WriteString("\nJawab dalam bahasa Indonesia yang ramah dan ringkas, gunakan format Markdown. ")
	sb.WriteString("Jika pertanyaan di luar layanan RT, arahkan warga ke kontak pengurus.")

	if webContext != "" {
		sb.WriteString("\n\nInformasi tambahan dari web:\n")
		sb.WriteString(webContext)
	}

	return sb.String()
}
