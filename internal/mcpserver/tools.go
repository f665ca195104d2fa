package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/MentorAPI/internal/config"
)

type queryInput struct {
	Query    string  `json:"query" jsonschema:"the search text to match against stored document chunks"`
	TopK     int     `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
	MinScore float64 `json:"min_score,omitempty" jsonschema:"minimum cosine similarity, 0 to 1"`
}

type queryOutput struct {
	Matches []matchOutput `json:"matches"`
	Count   int           `json:"count"`
}

type matchOutput struct {
	Text       string  `json:"text"`
	SourceFile string  `json:"source_file"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

type statsInput struct{}

type statsOutput struct {
	TotalChunks    int      `json:"total_chunks"`
	TotalDocuments int      `json:"total_documents"`
	Filenames      []string `json:"filenames"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_documents",
		Description: "Search the ingested business documents for chunks relevant to a query",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_stats",
		Description: "Report how many chunks and documents are in the store and which files were ingested",
	}, s.handleStats)
}

func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input queryInput,
) (*mcp.CallToolResult, queryOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = config.DefaultTopK
	}

	results, err := s.ragService.Query(ctx, input.Query, topK, input.MinScore)
	if err != nil {
		return nil, queryOutput{}, err
	}

	output := queryOutput{
		Matches: make([]matchOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Matches[i] = matchOutput{
			Text:       r.Chunk.Text,
			SourceFile: r.Chunk.SourceFile,
			ChunkIndex: r.Chunk.ChunkIndex,
			Score:      r.Score,
		}
	}
	return nil, output, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ statsInput,
) (*mcp.CallToolResult, statsOutput, error) {
	stats := s.ragService.Stats(ctx)
	return nil, statsOutput{
		TotalChunks:    stats.TotalChunks,
		TotalDocuments: stats.TotalDocuments,
		Filenames:      stats.Filenames,
	}, nil
}
