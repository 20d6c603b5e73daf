package router_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chem.app/api/internal/http/router"
	"chem.app/api/internal/identity"
	"chem.app/api/internal/notify"
	"chem.app/api/internal/service"
	"chem.app/api/internal/store"
)

var _ = Describe("SetupRoutes", func() {
	var engine *gin.Engine

	setup := func(protect bool) {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		services := service.NewServices(store.NewStores(nil), nil, notify.Discard{}, identity.Unavailable{})
		router.SetupRoutes(engine, services, notify.Discard{}, identity.Unavailable{}, router.RouterConfig{
			ProtectResources:  protect,
			SessionCookieName: "session",
		})
	}

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("serves health and metrics without credentials", func() {
		setup(true)

		w := get("/health")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"status":"ok"}`))

		Expect(get("/metrics").Code).To(Equal(http.StatusOK))
	})

	DescribeTable("protects resource routes",
		func(path string) {
			setup(true)
			w := get(path)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(MatchJSON(`{"error":"Unauthorized"}`))
		},
		Entry("organizations", "/organizations"),
		Entry("organization contributors", "/organizations/1/contributors"),
		Entry("contributors", "/contributors/1"),
		Entry("transactions", "/transactions"),
		Entry("users", "/users"),
		Entry("notifications", "/notifications/stream"),
		Entry("login", "/auth/login"),
	)

	It("keeps auth routes protected when resources are open", func() {
		setup(false)

		Expect(get("/auth/login").Code).To(Equal(http.StatusUnauthorized))
		Expect(get("/organizations?sortBy=nope").Code).To(Equal(http.StatusBadRequest))
	})

	It("leaves check-email public", func() {
		setup(true)

		w := get("/auth/check-email")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
