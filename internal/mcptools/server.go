package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewMMseqsMCPServer creates an MCP server with all MSA pipeline tools
// registered.
func NewMMseqsMCPServer(svc *MSAService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mmseqs2",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_msa",
		Description: "Generate a multiple sequence alignment (MSA) for a protein sequence using MMseqs2. Runs the full pipeline (create query DB, search, convert to MSA, unpack, concatenate) and returns the a3m alignment.",
	}, svc.GenerateMSA)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_msa_from_file",
		Description: "Generate an MSA from a FASTA file and save all intermediate files and the final a3m to an output directory.",
	}, svc.GenerateMSAFromFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_msa_batch",
		Description: "Generate MSAs for several sequences concurrently, each in its own working subdirectory.",
	}, svc.GenerateMSABatch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "easy_search",
		Description: "Run a one-shot MMseqs2 easy-search against the reference database and return the path to the tabular (BLAST m8) hit file.",
	}, svc.EasySearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pad_database",
		Description: "Prepare a padded variant of a reference database, required for GPU-mode search. One-time administrative step.",
	}, svc.PadDatabase)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_status",
		Description: "Inspect a pipeline working directory and report which artifacts (query DB, result DB, MSA DB, unpacked alignments, concatenated a3m) exist.",
	}, svc.JobStatus)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunMCPServerHTTP starts an HTTP server exposing the MSA pipeline tools.
func RunMCPServerHTTP(ctx context.Context, svc *MSAService, addr string) error {
	server := NewMMseqsMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
