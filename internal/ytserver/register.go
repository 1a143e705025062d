// Package ytserver exposes the crawler as MCP tools. Handlers validate
// input, check the response cache, and delegate to the crawler; domain
// failures (unknown channel, empty ranges) come back as an error field in
// the payload rather than a protocol error, so clients always get JSON.
package ytserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_youtube/internal/crawler"
)

// RegisterTools registers all YouTube tools on the given MCP server:
// get_channel_metadata, get_latest_videos_summary, get_videos_by_timerange.
func RegisterTools(server *mcp.Server, cr *crawler.Crawler) {
	registerChannelInfo(server, cr)
	registerLatestVideos(server, cr)
	registerTimeRange(server, cr)
}
