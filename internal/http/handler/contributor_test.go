package handler_test

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chem.app/api/internal/http/handler"
	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
	"chem.app/api/internal/service"
)

var _ = Describe("ContributorHandler", func() {
	var (
		router *gin.Engine
		svc    *mockContributorService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockContributorService{}
		h := handler.NewContributorHandler(svc)
		router.GET("/contributors", h.List)
		router.POST("/contributors", h.Create)
		router.GET("/contributors/:id", h.Get)
		router.PUT("/contributors/:id", h.Update)
		router.DELETE("/contributors/:id", h.Delete)
		router.GET("/contributors/:id/transactions", h.Transactions)
	})

	It("creates a contributor with its organization", func() {
		var got service.CreateContributorInput
		svc.createFn = func(_ context.Context, in service.CreateContributorInput) (*model.Contributor, error) {
			got = in
			return &model.Contributor{ID: 4, FirstName: in.FirstName, LastName: in.LastName, OrganizationID: in.OrganizationID}, nil
		}

		w := do(router, http.MethodPost, "/contributors", `{"firstName":"Charlie","lastName":"Brown","organizationId":"7"}`)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(*got.OrganizationID).To(Equal(int64(7)))
		resp := decode(w)
		Expect(resp["organizationId"]).To(Equal("7"))
		Expect(resp["firstName"]).To(Equal("Charlie"))
	})

	It("rejects a malformed organization id in the body", func() {
		w := do(router, http.MethodPost, "/contributors", `{"firstName":"Charlie","lastName":"Brown","organizationId":"seven"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 400 for validation failures", func() {
		svc.createFn = func(_ context.Context, _ service.CreateContributorInput) (*model.Contributor, error) {
			return nil, service.Validation("firstName and lastName are required")
		}

		w := do(router, http.MethodPost, "/contributors", `{"firstName":"Charlie"}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["error"]).To(Equal("firstName and lastName are required"))
	})

	It("returns 404 when updating a missing contributor", func() {
		svc.updateFn = func(_ context.Context, _ int64, _ model.ContributorPatch) (*model.Contributor, error) {
			return nil, service.NotFound("Contributor not found")
		}

		w := do(router, http.MethodPut, "/contributors/3", `{"firstName":"Sally"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("lists a contributor's transactions", func() {
		var gotID int64
		var gotParams url.Values
		svc.transactionsFn = func(_ context.Context, contributorID int64, params url.Values) (query.Result[model.Transaction], error) {
			gotID, gotParams = contributorID, params
			return query.Result[model.Transaction]{Items: []model.Transaction{{ID: 1}}, Total: 1}, nil
		}

		w := do(router, http.MethodGet, "/contributors/3/transactions?sortBy=date&order=asc", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotID).To(Equal(int64(3)))
		Expect(gotParams.Get("order")).To(Equal("asc"))
		Expect(decode(w)["transactions"]).To(HaveLen(1))
	})

	It("deletes and returns the contributor", func() {
		w := do(router, http.MethodDelete, "/contributors/3", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["id"]).To(Equal("3"))
	})
})
