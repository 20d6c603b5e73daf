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

var _ = Describe("UserHandler", func() {
	var (
		router *gin.Engine
		svc    *mockUserService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockUserService{}
		h := handler.NewUserHandler(svc)
		router.GET("/users", h.List)
		router.GET("/users/:id", h.Get)
	})

	It("includes the next cursor as a string when present", func() {
		next := int64(11)
		svc.listFn = func(_ context.Context, _ url.Values) (*service.UserPage, error) {
			return &service.UserPage{
				Result:     query.Result[model.User]{Items: []model.User{{ID: 10}, {ID: 11}}, Total: 5},
				NextCursor: &next,
			}, nil
		}

		w := do(router, http.MethodGet, "/users?limit=2", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["nextCursor"]).To(Equal("11"))
		Expect(resp["users"]).To(HaveLen(2))
		Expect(resp["total"]).To(BeEquivalentTo(5))
	})

	It("omits the cursor on the last page", func() {
		w := do(router, http.MethodGet, "/users", "")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).NotTo(HaveKey("nextCursor"))
	})

	It("returns 404 for a missing user", func() {
		svc.getFn = func(_ context.Context, _ int64) (*model.User, error) {
			return nil, service.NotFound("User not found")
		}

		w := do(router, http.MethodGet, "/users/9", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
