package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chem.app/api/common/logger"
	"chem.app/api/internal/http/dto"
	"chem.app/api/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) List(c *gin.Context) {
	res, err := h.orgService.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationList(res.Items, res.Total))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	org, err := h.orgService.Get(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}
	org, err := h.orgService.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{OrganizationID: &orgID})
	org, err := h.orgService.Update(ctx, orgID, req.Patch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	org, err := h.orgService.Delete(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Transactions(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.orgService.Transactions(c.Request.Context(), orgID, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionList(res.Items, res.Total))
}

func (h *OrganizationHandler) Contributors(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.orgService.Contributors(c.Request.Context(), orgID, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContributorList(res.Items, res.Total))
}

func (h *OrganizationHandler) AddContributor(c *gin.Context) {
	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AddContributorRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ContributorID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contributorId is required"})
		return
	}

	link, err := h.orgService.AddContributor(c.Request.Context(), orgID, int64(*req.ContributorID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToContributorLinkResponse(link))
}
