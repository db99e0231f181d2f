package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/localloop/backend/internal/domain/catalog"
)

// CategoryHandler serves the fixed marketplace category set
type CategoryHandler struct {
	BaseHandler
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List godoc
// @ID           listCategories
// @Summary      List categories
// @Description  Return the fixed set of event categories in display order
// @Tags         categories
// @Produce      json
// @Success      200 {object} ListAPIResponse[string]
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories := catalog.AllCategories()
	values := make([]string, len(categories))
	for i, category := range categories {
		values[i] = string(category)
	}

	h.SuccessList(c, values, len(values))
}
