package handler

import (
	"strconv"

	"devmarket/internal/logger"
	"devmarket/internal/response"
	"devmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /items の公開API（読み取りのみ）
type ItemHandler struct {
	uc  *usecase.ItemUsecase
	log logger.Logger
}

func NewItemHandler(uc *usecase.ItemUsecase, log logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, log: log}
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/items", h.list)
	e.GET("/items/:itemId", h.detail)
}

// GET /items?isNew=true
func (h *ItemHandler) list(c echo.Context) error {
	var isNew *bool
	if v := c.QueryParam("isNew"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return response.OnFailureWithMessage(c, response.BadRequest, "invalid isNew")
		}
		isNew = &b
	}

	items, err := h.uc.GetAllItems(c.Request().Context(), isNew)
	if err != nil {
		return writeError(c, h.log, err)
	}

	if len(items) == 0 {
		return response.OnSuccess(c, response.ItemListEmpty, items)
	}
	return response.OnSuccess(c, response.ItemGetSuccess, items)
}

func (h *ItemHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		return writeError(c, h.log, usecase.ErrInvalidItemID)
	}

	it, err := h.uc.GetItemByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return response.OnSuccess(c, response.ItemGetSuccess, it)
}
