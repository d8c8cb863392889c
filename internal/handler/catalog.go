package handler

import (
	"net/http"
	"strings"

	"github.com/vistalabs/vista/internal/catalog"
	"github.com/vistalabs/vista/internal/domain"
)

// IngredientRequest is the body of ingredient create and update
type IngredientRequest struct {
	ID              string  `json:"id,omitempty" validate:"omitempty,max=64,excludesall=/?#"`
	Name            string  `json:"name" validate:"required,max=100"`
	Stock           float64 `json:"stock" validate:"gte=0"`
	DisplayUnit     string  `json:"display_unit" validate:"required,displayunit"`
	CostPerBaseUnit float64 `json:"cost_per_base_unit" validate:"gte=0"`
}

func (req IngredientRequest) toDomain() domain.Ingredient {
	return domain.Ingredient{
		ID:              req.ID,
		Name:            strings.TrimSpace(req.Name),
		Stock:           req.Stock,
		DisplayUnit:     domain.DisplayUnit(strings.ToLower(req.DisplayUnit)),
		CostPerBaseUnit: req.CostPerBaseUnit,
	}
}

// PackagingRequest is the body of packaging create and update
type PackagingRequest struct {
	ID           string  `json:"id,omitempty" validate:"omitempty,max=64,excludesall=/?#"`
	Name         string  `json:"name" validate:"required,max=100"`
	CapacityMl   float64 `json:"capacity_ml" validate:"gt=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	CostPerPiece float64 `json:"cost_per_piece" validate:"gte=0"`
	MinStock     *int    `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
}

func (req PackagingRequest) toDomain() domain.Packaging {
	return domain.Packaging{
		ID:           req.ID,
		Name:         strings.TrimSpace(req.Name),
		CapacityMl:   req.CapacityMl,
		Stock:        req.Stock,
		CostPerPiece: req.CostPerPiece,
		MinStock:     req.MinStock,
	}
}

// FormulaItemRequest is one formula line
type FormulaItemRequest struct {
	IngredientID        string  `json:"ingredient_id" validate:"required"`
	AmountPerUnitVolume float64 `json:"amount_per_unit_volume" validate:"gte=0"`
}

// ProductRequest is the body of product create and update
type ProductRequest struct {
	ID          string               `json:"id,omitempty" validate:"omitempty,max=64,excludesall=/?#"`
	Name        string               `json:"name" validate:"required,max=100"`
	Category    string               `json:"category,omitempty" validate:"max=50"`
	Formula     []FormulaItemRequest `json:"formula" validate:"dive"`
	PackagingID string               `json:"packaging_id" validate:"required"`
	SalePrice   float64              `json:"sale_price" validate:"gte=0"`
	Stock       int                  `json:"stock" validate:"gte=0"`
}

func (req ProductRequest) toDomain() domain.Product {
	formula := make([]domain.FormulaItem, 0, len(req.Formula))
	for _, item := range req.Formula {
		formula = append(formula, domain.FormulaItem{
			IngredientID:        item.IngredientID,
			AmountPerUnitVolume: item.AmountPerUnitVolume,
		})
	}
	return domain.Product{
		ID:          req.ID,
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Formula:     formula,
		PackagingID: req.PackagingID,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
	}
}

// RestockIngredientRequest adds stock to an ingredient. Quantity is read in
// the display unit (kg, l) when InDisplayUnit is set, otherwise in g/ml/pcs.
type RestockIngredientRequest struct {
	Quantity      float64 `json:"quantity" validate:"gt=0"`
	InDisplayUnit bool    `json:"in_display_unit"`
}

// RestockPackagingRequest adds pieces to a packaging
type RestockPackagingRequest struct {
	Pieces int `json:"pieces" validate:"gt=0"`
}

// CatalogHandlers serves ingredient, packaging and product routes
type CatalogHandlers struct {
	svc catalog.Service
}

// NewCatalogHandlers creates catalog handlers
func NewCatalogHandlers(svc catalog.Service) *CatalogHandlers {
	return &CatalogHandlers{svc: svc}
}

// ==================== Ingredients ====================

// HandleListIngredients lists ingredients
// @Summary List ingredients
// @Tags ingredients
// @Produce json
// @Success 200 {object} ListResponse[domain.Ingredient]
// @Security ApiKeyAuth
// @Router /api/v1/ingredients [get]
func (h *CatalogHandlers) HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListIngredients(r.Context())
	if err != nil {
		respondServiceError(w, r, "List ingredients", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(items))
}

// HandleGetIngredient returns one ingredient
// @Summary Get ingredient
// @Tags ingredients
// @Produce json
// @Param id path string true "Ingredient ID"
// @Success 200 {object} domain.Ingredient
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ingredients/{id} [get]
func (h *CatalogHandlers) HandleGetIngredient(w http.ResponseWriter, r *http.Request) {
	ing, err := h.svc.GetIngredient(r.Context(), pathID(r))
	if err != nil {
		respondServiceError(w, r, "Get ingredient", err)
		return
	}
	respondJSON(w, http.StatusOK, ing)
}

// HandleCreateIngredient creates an ingredient
// @Summary Create ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param request body IngredientRequest true "Ingredient"
// @Success 201 {object} domain.Ingredient
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ingredients [post]
func (h *CatalogHandlers) HandleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create ingredient"); err != nil {
		return
	}
	ing, err := h.svc.CreateIngredient(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Create ingredient", err)
		return
	}
	respondJSON(w, http.StatusCreated, ing)
}

// HandleUpdateIngredient replaces an ingredient
// @Summary Update ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path string true "Ingredient ID"
// @Param request body IngredientRequest true "Ingredient"
// @Success 200 {object} domain.Ingredient
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ingredients/{id} [put]
func (h *CatalogHandlers) HandleUpdateIngredient(w http.ResponseWriter, r *http.Request) {
	var req IngredientRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update ingredient"); err != nil {
		return
	}
	req.ID = pathID(r)
	ing, err := h.svc.UpdateIngredient(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Update ingredient", err)
		return
	}
	respondJSON(w, http.StatusOK, ing)
}

// HandleDeleteIngredient deletes an unreferenced ingredient
// @Summary Delete ingredient
// @Tags ingredients
// @Produce json
// @Param id path string true "Ingredient ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ingredients/{id} [delete]
func (h *CatalogHandlers) HandleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteIngredient(r.Context(), pathID(r)); err != nil {
		respondServiceError(w, r, "Delete ingredient", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeleted})
}

// HandleRestockIngredient adds stock to an ingredient
// @Summary Restock ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path string true "Ingredient ID"
// @Param request body RestockIngredientRequest true "Quantity"
// @Success 200 {object} domain.Ingredient
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ingredients/{id}/restock [post]
func (h *CatalogHandlers) HandleRestockIngredient(w http.ResponseWriter, r *http.Request) {
	var req RestockIngredientRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Restock ingredient"); err != nil {
		return
	}
	ing, err := h.svc.RestockIngredient(r.Context(), pathID(r), req.Quantity, req.InDisplayUnit)
	if err != nil {
		respondServiceError(w, r, "Restock ingredient", err)
		return
	}
	respondJSON(w, http.StatusOK, ing)
}

// ==================== Packaging ====================

// HandleListPackaging lists packaging
// @Summary List packaging
// @Tags packaging
// @Produce json
// @Success 200 {object} ListResponse[domain.Packaging]
// @Security ApiKeyAuth
// @Router /api/v1/packaging [get]
func (h *CatalogHandlers) HandleListPackaging(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListPackaging(r.Context())
	if err != nil {
		respondServiceError(w, r, "List packaging", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(items))
}

// HandleGetPackaging returns one packaging
// @Summary Get packaging
// @Tags packaging
// @Produce json
// @Param id path string true "Packaging ID"
// @Success 200 {object} domain.Packaging
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/packaging/{id} [get]
func (h *CatalogHandlers) HandleGetPackaging(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.svc.GetPackaging(r.Context(), pathID(r))
	if err != nil {
		respondServiceError(w, r, "Get packaging", err)
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

// HandleCreatePackaging creates a packaging
// @Summary Create packaging
// @Tags packaging
// @Accept json
// @Produce json
// @Param request body PackagingRequest true "Packaging"
// @Success 201 {object} domain.Packaging
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/packaging [post]
func (h *CatalogHandlers) HandleCreatePackaging(w http.ResponseWriter, r *http.Request) {
	var req PackagingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create packaging"); err != nil {
		return
	}
	pkg, err := h.svc.CreatePackaging(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Create packaging", err)
		return
	}
	respondJSON(w, http.StatusCreated, pkg)
}

// HandleUpdatePackaging replaces a packaging
// @Summary Update packaging
// @Tags packaging
// @Accept json
// @Produce json
// @Param id path string true "Packaging ID"
// @Param request body PackagingRequest true "Packaging"
// @Success 200 {object} domain.Packaging
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/packaging/{id} [put]
func (h *CatalogHandlers) HandleUpdatePackaging(w http.ResponseWriter, r *http.Request) {
	var req PackagingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update packaging"); err != nil {
		return
	}
	req.ID = pathID(r)
	pkg, err := h.svc.UpdatePackaging(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Update packaging", err)
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

// HandleDeletePackaging deletes an unreferenced packaging
// @Summary Delete packaging
// @Tags packaging
// @Produce json
// @Param id path string true "Packaging ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/packaging/{id} [delete]
func (h *CatalogHandlers) HandleDeletePackaging(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePackaging(r.Context(), pathID(r)); err != nil {
		respondServiceError(w, r, "Delete packaging", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeleted})
}

// HandleRestockPackaging adds pieces to a packaging
// @Summary Restock packaging
// @Tags packaging
// @Accept json
// @Produce json
// @Param id path string true "Packaging ID"
// @Param request body RestockPackagingRequest true "Pieces"
// @Success 200 {object} domain.Packaging
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/packaging/{id}/restock [post]
func (h *CatalogHandlers) HandleRestockPackaging(w http.ResponseWriter, r *http.Request) {
	var req RestockPackagingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Restock packaging"); err != nil {
		return
	}
	pkg, err := h.svc.RestockPackaging(r.Context(), pathID(r), req.Pieces)
	if err != nil {
		respondServiceError(w, r, "Restock packaging", err)
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

// ==================== Products ====================

// HandleListProducts lists products
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {object} ListResponse[domain.Product]
// @Security ApiKeyAuth
// @Router /api/v1/products [get]
func (h *CatalogHandlers) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListProducts(r.Context())
	if err != nil {
		respondServiceError(w, r, "List products", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(items))
}

// HandleGetProduct returns one product
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/products/{id} [get]
func (h *CatalogHandlers) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), pathID(r))
	if err != nil {
		respondServiceError(w, r, "Get product", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleCreateProduct creates a product
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/products [post]
func (h *CatalogHandlers) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create product"); err != nil {
		return
	}
	p, err := h.svc.CreateProduct(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Create product", err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// HandleUpdateProduct replaces a product
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body ProductRequest true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/products/{id} [put]
func (h *CatalogHandlers) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update product"); err != nil {
		return
	}
	req.ID = pathID(r)
	p, err := h.svc.UpdateProduct(r.Context(), req.toDomain())
	if err != nil {
		respondServiceError(w, r, "Update product", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleDeleteProduct deletes a product
// @Summary Delete product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/products/{id} [delete]
func (h *CatalogHandlers) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), pathID(r)); err != nil {
		respondServiceError(w, r, "Delete product", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeleted})
}
