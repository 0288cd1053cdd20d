// Package server wires the screening tools into an MCP server.
//
// No scoring logic lives here, only registration.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/verte-zerg/cognicare/internal/speech"
	"github.com/verte-zerg/cognicare/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Name is the server name reported to MCP clients.
const Name = "cognicare"

// New creates the MCP server with every screening tool registered.
func New(svc tools.Screener, analyzer *speech.Analyzer, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	evaluate := tools.NewEvaluateTool(svc)
	s.AddTool(evaluate.Definition(), evaluate.Handle)

	trends := tools.NewTrendsTool(svc)
	s.AddTool(trends.Definition(), trends.Handle)

	alerts := tools.NewAlertsTool(svc)
	s.AddTool(alerts.Definition(), alerts.Handle)

	speechTool := tools.NewSpeechTool(analyzer, svc)
	s.AddTool(speechTool.Definition(), speechTool.Handle)

	record := tools.NewRecordTool(svc)
	s.AddTool(record.Definition(), record.Handle)

	logger.Info("mcp server ready", zap.String("version", Version), zap.Int("tools", 5))
	return s
}

// Serve runs s over stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = `cognicare scores cognitive screening results.

Record assessments with screening_record (or speech_analyze with a user_id),
then call screening_evaluate for the weighted risk score. screening_trends and
screening_alerts report longitudinal changes. Scores are 0-100 where higher
means more risk. The output is a screening aid, not a diagnosis.`
