package toolserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
	"github.com/tu-usuario/wms-core/internal/domain"
)

// ToolDeps dependencias de las herramientas.
type ToolDeps struct {
	TransferUC *inventory.TransferUseCase
	QueryUC    *inventory.QueryUseCase
	ProductUC  *usecase.ProductUseCase
	// Actor queda como performed_by en los movimientos que origina el servidor.
	Actor string
}

func registerTools(s *Server, deps ToolDeps) {
	s.register(toolDefinition{
		Name:        "inventory_check",
		Description: "Check current inventory levels by product, location, or SKU",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"productId": {"type": "string", "description": "Product UUID"},
				"locationId": {"type": "string", "description": "Location UUID"},
				"sku": {"type": "string", "description": "Product SKU"},
				"includeDetails": {"type": "boolean", "description": "Include product and location details"}
			}
		}`),
	}, inventoryCheckHandler(deps))

	s.register(toolDefinition{
		Name:        "inventory_transfer",
		Description: "Transfer inventory between locations",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"productId": {"type": "string", "description": "Product UUID"},
				"fromLocationId": {"type": "string", "description": "Source location UUID"},
				"toLocationId": {"type": "string", "description": "Destination location UUID"},
				"quantity": {"type": "number", "description": "Quantity to transfer"},
				"lotNumber": {"type": "string", "description": "Lot number (optional)"},
				"reason": {"type": "string", "description": "Reason for transfer (optional)"}
			},
			"required": ["productId", "fromLocationId", "toLocationId", "quantity"]
		}`),
	}, inventoryTransferHandler(deps))

	s.register(toolDefinition{
		Name:        "product_manage",
		Description: "Create, update, or delete products",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"action": {"type": "string", "enum": ["create", "update", "delete", "list"], "description": "Action to perform"},
				"productId": {"type": "string", "description": "Product UUID (for update/delete)"},
				"data": {
					"type": "object",
					"properties": {
						"sku": {"type": "string"},
						"name": {"type": "string"},
						"description": {"type": "string"},
						"category": {"type": "string"},
						"unit": {"type": "string"},
						"barcode": {"type": "string"},
						"minStock": {"type": "number"},
						"maxStock": {"type": "number"}
					}
				}
			},
			"required": ["action"]
		}`),
	}, productManageHandler(deps))
}

func inventoryCheckHandler(deps ToolDeps) toolHandler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var in struct {
			ProductID      string `json:"productId"`
			LocationID     string `json:"locationId"`
			SKU            string `json:"sku"`
			IncludeDetails bool   `json:"includeDetails"`
		}
		if len(args) > 0 {
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, fmt.Errorf("argumentos inválidos: %w", err)
			}
		}
		return deps.QueryUC.Check(ctx, dto.CheckStockRequest{
			ProductID:      in.ProductID,
			LocationID:     in.LocationID,
			SKU:            in.SKU,
			IncludeDetails: in.IncludeDetails,
		})
	}
}

func inventoryTransferHandler(deps ToolDeps) toolHandler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var in struct {
			ProductID      string  `json:"productId"`
			FromLocationID string  `json:"fromLocationId"`
			ToLocationID   string  `json:"toLocationId"`
			Quantity       int64   `json:"quantity"`
			LotNumber      *string `json:"lotNumber"`
			Reason         *string `json:"reason"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("argumentos inválidos: %w", err)
		}

		res, err := deps.TransferUC.Transfer(ctx, inventory.TransferInput{
			ProductID:      in.ProductID,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Quantity:       in.Quantity,
			LotNumber:      in.LotNumber,
			Reason:         in.Reason,
			PerformedBy:    deps.Actor,
		})
		if err != nil {
			var insErr *domain.InsufficientStockError
			if errors.As(err, &insErr) {
				return nil, fmt.Errorf("Insufficient inventory. Available: %d", insErr.Available)
			}
			if errors.Is(err, domain.ErrSourceNotFound) {
				return nil, errors.New("Source inventory not found")
			}
			return nil, err
		}
		return map[string]interface{}{
			"success": true,
			"message": fmt.Sprintf("Transferred %d units from %s to %s", in.Quantity, in.FromLocationID, in.ToLocationID),
			"movementId": res.MovementID,
		}, nil
	}
}

func productManageHandler(deps ToolDeps) toolHandler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var in struct {
			Action    string `json:"action"`
			ProductID string `json:"productId"`
			Data      struct {
				SKU         string  `json:"sku"`
				Name        *string `json:"name"`
				Description *string `json:"description"`
				Category    *string `json:"category"`
				Unit        *string `json:"unit"`
				Barcode     *string `json:"barcode"`
				MinStock    *int64  `json:"minStock"`
				MaxStock    *int64  `json:"maxStock"`
			} `json:"data"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("argumentos inválidos: %w", err)
		}

		switch in.Action {
		case "create":
			if in.Data.SKU == "" || in.Data.Name == nil {
				return nil, errors.New("sku y name son obligatorios")
			}
			req := dto.CreateProductRequest{
				SKU:         in.Data.SKU,
				Name:        *in.Data.Name,
				Description: in.Data.Description,
				Category:    in.Data.Category,
				Barcode:     in.Data.Barcode,
				Unit:        "PCS",
				MaxStock:    999999,
			}
			if in.Data.Unit != nil {
				req.Unit = *in.Data.Unit
			}
			if in.Data.MinStock != nil {
				req.MinStock = *in.Data.MinStock
			}
			if in.Data.MaxStock != nil {
				req.MaxStock = *in.Data.MaxStock
			}
			product, err := deps.ProductUC.Create(ctx, req)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"success": true, "product": product}, nil

		case "update":
			if in.ProductID == "" {
				return nil, errors.New("Product ID is required for update")
			}
			req := dto.UpdateProductRequest{
				Name:        in.Data.Name,
				Description: in.Data.Description,
				Category:    in.Data.Category,
				Barcode:     in.Data.Barcode,
				Unit:        in.Data.Unit,
				MinStock:    in.Data.MinStock,
				MaxStock:    in.Data.MaxStock,
			}
			product, err := deps.ProductUC.Update(ctx, in.ProductID, req)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"success": true, "product": product}, nil

		case "delete":
			if in.ProductID == "" {
				return nil, errors.New("Product ID is required for delete")
			}
			if err := deps.ProductUC.Deactivate(ctx, in.ProductID); err != nil {
				return nil, err
			}
			return map[string]interface{}{"success": true, "message": "Product deactivated"}, nil

		case "list":
			products, err := deps.ProductUC.ListActive(ctx, dto.PageRequest{})
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"success": true, "products": products.Items}, nil

		default:
			return nil, fmt.Errorf("acción desconocida: %s", in.Action)
		}
	}
}
