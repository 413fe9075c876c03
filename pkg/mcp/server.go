// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mcp provides an MCP (Model Context Protocol) server exposing a
// browser profile's history, bookmarks and tabs.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cloudygreybeard/chromium-profile/pkg/bookmark"
	"github.com/cloudygreybeard/chromium-profile/pkg/history"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
	jsonout "github.com/cloudygreybeard/chromium-profile/pkg/output/json"
	"github.com/cloudygreybeard/chromium-profile/pkg/output/markdown"
	"github.com/cloudygreybeard/chromium-profile/pkg/status"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

const protocolVersion = "2024-11-05"

// Resource URIs.
const (
	URIHistory           = "chromium-profile://history"
	URIBookmarks         = "chromium-profile://bookmarks"
	URIBookmarksMarkdown = "chromium-profile://bookmarks/markdown"
	URILocalTabs         = "chromium-profile://tabs/local"
	URISyncedTabs        = "chromium-profile://tabs/synced"
	URIStatus            = "chromium-profile://status"
)

// maxLineSize bounds a single JSON-RPC message.
const maxLineSize = 4 << 20

// Server implements an MCP server for one browser profile.
type Server struct {
	profileDir string
	version    string
	logger     *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewServer creates a server reading the given profile directory.
func NewServer(profileDir, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{profileDir: profileDir, version: version, logger: logger, Now: time.Now}
}

// Run serves newline-delimited JSON-RPC requests from in, writing
// responses to out, until in is exhausted or ctx is done. A blocked read
// does not delay cancellation; the reading goroutine exits once in
// returns.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-done:
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(out)
	for {
		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-scanErr:
			return err
		case line = <-lines:
		}

		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			if err := encoder.Encode(errorResponse(nil, codeParseError, "Parse error")); err != nil {
				return err
			}
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
	}
}

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000
)

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	// Notifications get no response.
	if req.ID == nil {
		s.logger.Debug("mcp notification", "method", req.Method)
		return nil
	}
	s.logger.Debug("mcp request", "method", req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return result(req.ID, map[string]any{})
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(ctx, req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return result(req.ID, map[string]any{
		"protocolVersion": protocolVersion,
		"serverInfo": map[string]string{
			"name":    "chromium-profile-cli",
			"version": s.version,
		},
		"capabilities": map[string]any{
			"resources": map[string]bool{
				"subscribe":   false,
				"listChanged": false,
			},
			"tools": map[string]any{},
		},
	})
}

var resources = []Resource{
	{URI: URIHistory, Name: "Recent History", Description: "The 100 most recently visited pages", MimeType: "application/json"},
	{URI: URIBookmarks, Name: "Bookmarks", Description: "All bookmarks and folders in tree order", MimeType: "application/json"},
	{URI: URIBookmarksMarkdown, Name: "Bookmarks (Markdown)", Description: "All bookmarks as a nested markdown list", MimeType: "text/markdown"},
	{URI: URILocalTabs, Name: "Open Tabs", Description: "Tabs open in the browser on this machine", MimeType: "application/json"},
	{URI: URISyncedTabs, Name: "Synced Tabs", Description: "Tabs open on other devices of the sync account", MimeType: "application/json"},
	{URI: URIStatus, Name: "Status", Description: "Which kinds of profile data can be read", MimeType: "application/json"},
}

func (s *Server) handleResourcesList(req *Request) *Response {
	return result(req.ID, map[string]any{"resources": resources})
}

func (s *Server) handleResourcesRead(ctx context.Context, req *Request) *Response {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}

	var doc output.Document
	var err error
	switch params.URI {
	case URIHistory:
		doc, err = s.history(ctx, history.Filter{Limit: history.DefaultLimit})
	case URIBookmarks, URIBookmarksMarkdown:
		doc, err = s.bookmarks(ctx, "", "")
	case URILocalTabs:
		doc, err = s.localTabs(ctx)
	case URISyncedTabs:
		doc, err = s.syncedTabs(ctx)
	case URIStatus:
		doc = output.StatusDocument{
			Profile: s.profileDir,
			Items:   status.Check(ctx, s.profileDir, status.DefaultCheckers()...),
		}
	default:
		return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("Unknown resource: %s", params.URI))
	}
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}

	var renderer output.Adapter = jsonout.New()
	mimeType := "application/json"
	if params.URI == URIBookmarksMarkdown {
		renderer, mimeType = markdown.New(), "text/markdown"
	}
	data, err := renderer.Render(doc)
	if err != nil {
		return errorResponse(req.ID, codeServerError, err.Error())
	}

	return result(req.ID, map[string]any{
		"contents": []map[string]any{
			{
				"uri":      params.URI,
				"mimeType": mimeType,
				"text":     string(data),
			},
		},
	})
}

var tools = []Tool{
	{
		Name:        "search_history",
		Description: "Search browsing history, most recent visits first",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":   map[string]any{"type": "string", "description": "Case-insensitive text to find in title or URL"},
				"pattern": map[string]any{"type": "string", "description": "Regular expression to match title or URL"},
				"days":    map[string]any{"type": "integer", "description": "Only visits in the last N days"},
				"after":   map[string]any{"type": "string", "description": "Only visits on or after this date (YYYY-MM-DD)"},
				"before":  map[string]any{"type": "string", "description": "Only visits before this date (YYYY-MM-DD)"},
				"limit":   map[string]any{"type": "integer", "description": "Maximum results (default 100, 0 for all)"},
			},
		},
	},
	{
		Name:        "search_bookmarks",
		Description: "Search bookmarks by title or URL",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":  map[string]any{"type": "string", "description": "Search query"},
				"folder": map[string]any{"type": "string", "description": "Only search inside this folder ID"},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "list_tabs",
		Description: "List open tabs on this machine, or on synced devices",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"synced": map[string]any{"type": "boolean", "description": "List the tabs of other synced devices instead"},
			},
		},
	},
}

func (s *Server) handleToolsList(req *Request) *Response {
	return result(req.ID, map[string]any{"tools": tools})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	var doc output.Document
	var err error
	switch params.Name {
	case "search_history":
		args := struct {
			Query   string `json:"query"`
			Pattern string `json:"pattern"`
			Days    int    `json:"days"`
			After   string `json:"after"`
			Before  string `json:"before"`
			Limit   *int   `json:"limit"`
		}{}
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return errorResponse(req.ID, codeInvalidParams, "Invalid search_history arguments")
		}
		f := history.Filter{
			Query:   args.Query,
			Pattern: args.Pattern,
			Days:    args.Days,
			After:   args.After,
			Before:  args.Before,
			Limit:   history.DefaultLimit,
		}
		if args.Limit != nil {
			f.Limit = *args.Limit
		}
		doc, err = s.history(ctx, f)

	case "search_bookmarks":
		var args struct {
			Query  string `json:"query"`
			Folder string `json:"folder"`
		}
		if err := json.Unmarshal(params.Arguments, &args); err != nil || args.Query == "" {
			return errorResponse(req.ID, codeInvalidParams, "Invalid search_bookmarks arguments")
		}
		doc, err = s.bookmarks(ctx, args.Query, args.Folder)

	case "list_tabs":
		var args struct {
			Synced bool `json:"synced"`
		}
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return errorResponse(req.ID, codeInvalidParams, "Invalid list_tabs arguments")
		}
		if args.Synced {
			doc, err = s.syncedTabs(ctx)
		} else {
			doc, err = s.localTabs(ctx)
		}

	default:
		return errorResponse(req.ID, codeInvalidParams, "Unknown tool")
	}

	if err != nil {
		return toolResult(req.ID, err.Error(), true)
	}
	data, err := jsonout.New().Render(doc)
	if err != nil {
		return toolResult(req.ID, err.Error(), true)
	}
	return toolResult(req.ID, string(data), false)
}

func (s *Server) history(ctx context.Context, f history.Filter) (output.Document, error) {
	entries, err := history.NewReader(s.profileDir).Search(ctx, f, s.Now())
	if err != nil {
		return nil, err
	}
	return output.HistoryDocument{Entries: entries}, nil
}

func (s *Server) bookmarks(ctx context.Context, query, folder string) (output.Document, error) {
	tree, err := bookmark.NewReader(s.profileDir).Read(ctx)
	if err != nil {
		return nil, err
	}

	var nodes []bookmark.Node
	if query == "" {
		nodes, err = tree.List(folder)
	} else {
		nodes, err = tree.Search(query, folder)
	}
	if err != nil {
		return nil, err
	}
	return output.BookmarksDocument{Nodes: nodes, Query: query}, nil
}

func (s *Server) localTabs(ctx context.Context) (output.Document, error) {
	open, err := tabs.NewLocalReader(s.profileDir).Read(ctx)
	if err != nil {
		return nil, err
	}
	return output.LocalTabsDocument{Tabs: open}, nil
}

func (s *Server) syncedTabs(ctx context.Context) (output.Document, error) {
	devices, err := tabs.NewSyncedReader(s.profileDir).Read(ctx)
	if err != nil {
		return nil, err
	}
	return output.SyncedTabsDocument{Devices: devices}, nil
}

func result(id any, v any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: v}
}

func toolResult(id any, text string, isError bool) *Response {
	res := map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	}
	if isError {
		res["isError"] = true
	}
	return result(id, res)
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

// MCP Protocol types

// Request represents a JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Resource represents an MCP resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Tool represents an MCP tool.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"inputSchema"`
}
