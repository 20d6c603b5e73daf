package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chem.app/api/internal/http/dto"
	"chem.app/api/internal/service"
)

type ContributorHandler struct {
	contributorService service.ContributorService
}

func NewContributorHandler(contributorService service.ContributorService) *ContributorHandler {
	return &ContributorHandler{contributorService: contributorService}
}

func (h *ContributorHandler) List(c *gin.Context) {
	res, err := h.contributorService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContributorList(res.Items, res.Total))
}

func (h *ContributorHandler) Get(c *gin.Context) {
	contributorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contributor, err := h.contributorService.Get(c.Request.Context(), contributorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContributorResponse(contributor))
}

func (h *ContributorHandler) Create(c *gin.Context) {
	var req dto.CreateContributorRequest
	if !bindJSON(c, &req) {
		return
	}
	contributor, err := h.contributorService.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToContributorResponse(contributor))
}

func (h *ContributorHandler) Update(c *gin.Context) {
	contributorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateContributorRequest
	if !bindJSON(c, &req) {
		return
	}
	contributor, err := h.contributorService.Update(c.Request.Context(), contributorID, req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContributorResponse(contributor))
}

func (h *ContributorHandler) Delete(c *gin.Context) {
	contributorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	contributor, err := h.contributorService.Delete(c.Request.Context(), contributorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContributorResponse(contributor))
}

func (h *ContributorHandler) Transactions(c *gin.Context) {
	contributorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.contributorService.Transactions(c.Request.Context(), contributorID, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionList(res.Items, res.Total))
}
