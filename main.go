// go_youtube — YouTube Channel Crawler MCP server.
//
// Exposes three MCP tools: get_channel_metadata,
// get_latest_videos_summary, get_videos_by_timerange.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_youtube/internal/crawler"
	"github.com/anatolykoptev/go_youtube/internal/media"
	"github.com/anatolykoptev/go_youtube/internal/summarize"
	"github.com/anatolykoptev/go_youtube/internal/transcript"
	"github.com/anatolykoptev/go_youtube/internal/youtube"
	"github.com/anatolykoptev/go_youtube/internal/ytserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8080")
)

func main() {
	cr, cache, err := initCrawler(context.Background())
	if err != nil {
		slog.Error("init failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting go_youtube",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_youtube",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server, cr)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_youtube",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics: func() string {
			return crawler.FormatMetrics(cache)
		},
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

// initCrawler builds the full pipeline from environment configuration:
// YouTube Data API client, yt-dlp media client, whisper transcriber,
// summarizer, transcript store, and response cache.
func initCrawler(ctx context.Context) (*crawler.Crawler, *crawler.Cache, error) {
	yt, err := youtubeClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	mediaClient := media.NewClient(env.Str("TEMP_DIR", os.TempDir()))
	if p := env.Str("YTDLP_PATH", ""); p != "" {
		mediaClient.Path = p
	}

	stt := transcript.NewWhisperClient(env.Str("OPENAI_API_KEY", ""))
	if base := env.Str("WHISPER_API_BASE", ""); base != "" {
		stt.BaseURL = base
	}

	extractor := transcript.NewExtractor(mediaClient, stt)
	extractor.PreferredLang = env.Str("PREFERRED_SUBTITLE_LANG", "en")

	store, err := crawler.OpenStore(env.Str("TRANSCRIPT_DB", ""))
	if err != nil {
		// Extraction still works without persistence.
		slog.Warn("transcript store unavailable", slog.Any("error", err))
		store = nil
	}

	cache := crawler.NewCache(
		env.Str("REDIS_URL", ""),
		env.Duration("CACHE_TTL", time.Hour),
		env.Int("CACHE_MAX_ENTRIES", 1000),
		env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	)

	cr := &crawler.Crawler{
		Source:     yt,
		Extractor:  extractor,
		Summarizer: summaryProvider(),
		Store:      store,
		Cache:      cache,
	}
	return cr, cache, nil
}

func youtubeClient(ctx context.Context) (*youtube.Client, error) {
	return youtube.NewClient(ctx, env.Str("YOUTUBE_API_KEY", ""))
}

// summaryProvider selects the LLM backend. "anthropic" talks to the
// Messages API directly; "openai" and "deepseek" share the
// OpenAI-compatible chat completions client, differing only in base URL.
func summaryProvider() summarize.Provider {
	var (
		provider    = env.Str("AI_PROVIDER", "openai")
		temperature = env.Float("LLM_TEMPERATURE", 0.3)
		maxTokens   = env.Int("MAX_SUMMARY_TOKENS", 20000)
	)

	if provider == "anthropic" {
		return summarize.NewAnthropicProvider(
			env.Str("ANTHROPIC_API_KEY", ""),
			env.Str("SUMMARY_MODEL", "claude-sonnet-4-20250514"),
			temperature, maxTokens,
		)
	}

	base := env.Str("LLM_API_BASE", "https://api.openai.com/v1")
	apiKey := env.Str("OPENAI_API_KEY", "")
	model := env.Str("SUMMARY_MODEL", "gpt-4-turbo-preview")
	if provider == "deepseek" {
		base = env.Str("LLM_API_BASE", "https://api.deepseek.com")
		apiKey = env.Str("DEEPSEEK_API_KEY", "")
		model = env.Str("SUMMARY_MODEL", "deepseek-chat")
	}

	client := llm.NewClient(base, apiKey, model,
		llm.WithFallbackKeys(env.List("LLM_API_KEY_FALLBACKS", "")),
		llm.WithMaxTokens(maxTokens),
		llm.WithTemperature(temperature),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)
	return summarize.NewOpenAIProvider(client, temperature, maxTokens)
}
