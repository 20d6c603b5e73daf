package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/dto"
	"chem.app/api/internal/service"
)

type TransactionHandler struct {
	txService service.TransactionService
}

func NewTransactionHandler(txService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txService: txService}
}

func (h *TransactionHandler) List(c *gin.Context) {
	res, err := h.txService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionList(res.Items, res.Total))
}

func (h *TransactionHandler) Get(c *gin.Context) {
	txID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tx, err := h.txService.Get(c.Request.Context(), txID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.txService.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

func (h *TransactionHandler) Update(c *gin.Context) {
	txID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	tx, err := h.txService.Update(c.Request.Context(), txID, req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	txID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tx, err := h.txService.Delete(c.Request.Context(), txID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}
