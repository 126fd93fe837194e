// Package toolserver expone las operaciones de inventario como herramientas
// JSON-RPC 2.0 sobre stdin/stdout (protocolo MCP: initialize, tools/list,
// tools/call). Cada línea de entrada es una petición; cada línea de salida,
// una respuesta. El log va siempre a stderr para no contaminar el canal.
package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tu-usuario/wms-core/pkg/logger"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "wms-tool-server"
	serverVersion   = "1.0.0"
)

// Códigos de error JSON-RPC 2.0.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toolContent es un bloque de contenido en el resultado de tools/call.
type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// toolResult es el resultado de tools/call: los errores de negocio no viajan
// como errores JSON-RPC sino como texto con isError=true.
type toolResult struct {
	Content []toolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// toolDefinition describe una herramienta en tools/list.
type toolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// toolHandler ejecuta una herramienta con sus argumentos crudos.
type toolHandler func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Server atiende el bucle JSON-RPC línea a línea.
type Server struct {
	tools    []toolDefinition
	handlers map[string]toolHandler
	log      *logger.Logger
}

// New construye el servidor con las herramientas registradas.
func New(deps ToolDeps, log *logger.Logger) *Server {
	s := &Server{handlers: make(map[string]toolHandler), log: log}
	registerTools(s, deps)
	return s
}

// register agrega una herramienta al catálogo.
func (s *Server) register(def toolDefinition, handler toolHandler) {
	s.tools = append(s.tools, def)
	s.handlers[def.Name] = handler
}

// Serve procesa peticiones de in hasta EOF, escribiendo respuestas en out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	// Las llamadas con listas de items pueden superar el búfer por defecto.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("petición ilegible")
			_ = encoder.Encode(response{
				JSONRPC: "2.0",
				Error:   &rpcError{Code: codeParseError, Message: "parse error"},
			})
			continue
		}

		resp := s.dispatch(ctx, &req)
		if resp == nil {
			continue // notificación, sin respuesta
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return scanner.Err()
}

// dispatch enruta la petición por método. Devuelve nil para notificaciones.
func (s *Server) dispatch(ctx context.Context, req *request) *response {
	if req.JSONRPC != "2.0" {
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Error: &rpcError{Code: codeInvalidRequest, Message: "se requiere jsonrpc 2.0"},
		}
	}

	switch req.Method {
	case "initialize":
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Result: map[string]interface{}{
				"protocolVersion": protocolVersion,
				"capabilities":    map[string]interface{}{"tools": map[string]interface{}{}},
				"serverInfo": map[string]string{
					"name":    serverName,
					"version": serverVersion,
				},
			},
		}

	case "notifications/initialized":
		return nil

	case "tools/list":
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Result: map[string]interface{}{"tools": s.tools},
		}

	case "tools/call":
		return s.callTool(ctx, req)

	default:
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Error: &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("método desconocido: %s", req.Method)},
		}
	}
}

func (s *Server) callTool(ctx context.Context, req *request) *response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Error: &rpcError{Code: codeInvalidParams, Message: "params inválidos"},
		}
	}

	handler, ok := s.handlers[params.Name]
	if !ok {
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Error: &rpcError{Code: codeInvalidParams, Message: fmt.Sprintf("herramienta desconocida: %s", params.Name)},
		}
	}

	s.log.Debug().Str("tool", params.Name).Msg("ejecutando herramienta")
	result, err := handler(ctx, params.Arguments)
	if err != nil {
		// Error de negocio: texto con isError, no error de protocolo.
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Result: toolResult{
				Content: []toolContent{{Type: "text", Text: "Error: " + err.Error()}},
				IsError: true,
			},
		}
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return &response{
			JSONRPC: "2.0", ID: req.ID,
			Result: toolResult{
				Content: []toolContent{{Type: "text", Text: "Error: " + err.Error()}},
				IsError: true,
			},
		}
	}
	return &response{
		JSONRPC: "2.0", ID: req.ID,
		Result: toolResult{
			Content: []toolContent{{Type: "text", Text: string(payload)}},
		},
	}
}
