package ytserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_youtube/internal/crawler"
)

func registerChannelInfo(server *mcp.Server, cr *crawler.Crawler) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_channel_metadata",
		Description: "Get comprehensive metadata for a YouTube channel: name, description, custom URL, avatar and banner images, subscriber/video/view counts, publication date, country, and keywords. Accepts a username, @handle, or UC… channel ID.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input crawler.ChannelInfoInput) (*mcp.CallToolResult, crawler.ChannelInfoOutput, error) {
		if input.Username == "" {
			return nil, crawler.ChannelInfoOutput{}, fmt.Errorf("username is required")
		}

		slog.Info("tool: channel info", slog.String("username", input.Username))

		out, err := cr.ChannelInfo(ctx, input)
		if err != nil {
			return nil, crawler.ChannelInfoOutput{}, err
		}
		return nil, *out, nil
	})
}
