package toolserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
	"github.com/tu-usuario/wms-core/pkg/logger"
)

// fakeViewRepo devuelve un inventario fijo para inventory_check.
type fakeViewRepo struct{}

func (fakeViewRepo) List(repository.InventoryFilter) ([]*repository.BalanceDetail, error) {
	return []*repository.BalanceDetail{
		{
			Balance:  entity.Balance{ProductID: "p1", LocationID: "l1", Quantity: 42, LotNumber: "L1"},
			Product:  repository.ProductSummary{SKU: "SKU-1", Name: "Tornillos"},
			Location: repository.LocationSummary{Code: "A-01-01"},
		},
	}, nil
}

func (fakeViewRepo) ProductTotals() ([]*repository.ProductStockTotal, error) {
	return nil, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Env: "production"}, io.Discard)
	return New(ToolDeps{
		QueryUC: inventory.NewQueryUseCase(fakeViewRepo{}),
		Actor:   "MCP User",
	}, log)
}

// serve procesa las líneas de entrada y devuelve las respuestas decodificadas.
func serve(t *testing.T, s *Server, lines ...string) []map[string]interface{} {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), in, &out))

	var responses []map[string]interface{}
	dec := json.NewDecoder(&out)
	for dec.More() {
		var resp map[string]interface{}
		require.NoError(t, dec.Decode(&resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServe_Initialize(t *testing.T) {
	s := newTestServer(t)
	responses := serve(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)

	require.Len(t, responses, 1)
	result, ok := responses[0]["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, protocolVersion, result["protocolVersion"])
	info := result["serverInfo"].(map[string]interface{})
	assert.Equal(t, serverName, info["name"])
}

func TestServe_ToolsListAnunciaLasTresHerramientas(t *testing.T) {
	s := newTestServer(t)
	responses := serve(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	require.Len(t, responses, 1)
	result := responses[0]["result"].(map[string]interface{})
	tools := result["tools"].([]interface{})
	require.Len(t, tools, 3)

	names := make([]string, 0, len(tools))
	for _, tl := range tools {
		names = append(names, tl.(map[string]interface{})["name"].(string))
	}
	assert.ElementsMatch(t, []string{"inventory_check", "inventory_transfer", "product_manage"}, names)
}

func TestServe_ToolsCallInventoryCheck(t *testing.T) {
	s := newTestServer(t)
	responses := serve(t, s,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"inventory_check","arguments":{"sku":"SKU-1"}}}`)

	require.Len(t, responses, 1)
	result := responses[0]["result"].(map[string]interface{})
	assert.Nil(t, result["isError"])
	content := result["content"].([]interface{})
	require.Len(t, content, 1)
	text := content[0].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, `"total_quantity": 42`)
	assert.Contains(t, text, "A-01-01")
}

func TestServe_HerramientaDesconocida(t *testing.T) {
	s := newTestServer(t)
	responses := serve(t, s,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"no_existe","arguments":{}}}`)

	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(codeInvalidParams), rpcErr["code"])
}

func TestServe_MetodoDesconocido(t *testing.T) {
	s := newTestServer(t)
	responses := serve(t, s, `{"jsonrpc":"2.0","id":5,"method":"resources/list"}`)

	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(codeMethodNotFound), rpcErr["code"])
}

func TestServe_NotificacionNoResponde(t *testing.T) {
	s := newTestServer(t)
	responses := serve(t, s,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":6,"method":"tools/list"}`)

	// Solo la segunda petición produce respuesta.
	require.Len(t, responses, 1)
	assert.NotNil(t, responses[0]["result"])
}

func TestServe_LineaIlegibleDevuelveParseError(t *testing.T) {
	s := newTestServer(t)
	responses := serve(t, s, `{esto no es json`)

	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]interface{})
	assert.Equal(t, float64(codeParseError), rpcErr["code"])
}
