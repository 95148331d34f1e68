package main

import (
	"context"

	"github.com/seqlab/mmseqs-mcp/internal/config"
	"github.com/seqlab/mmseqs-mcp/internal/mcptools"
	"github.com/seqlab/mmseqs-mcp/internal/pipeline"
)

// runServe exposes the pipeline as MCP tools, on stdio or HTTP.
func runServe(ctx context.Context, flags cliFlags, cfg *config.ProjectConfig, seq *pipeline.Sequencer) error {
	svc := mcptools.NewMSAService(seq)
	svc.SetDefaults(cfg.Options())
	svc.SetWorkDir(firstNonEmpty(flags.OutputDir, cfg.WorkDir))
	svc.SetPadded(cfg.Padded)

	if flags.HTTPAddr != "" {
		return mcptools.RunMCPServerHTTP(ctx, svc, flags.HTTPAddr)
	}

	server := mcptools.NewMMseqsMCPServer(svc)
	return mcptools.RunMCPServerStdio(ctx, server)
}
