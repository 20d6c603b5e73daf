package service_test

import (
	"context"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
	"chem.app/api/internal/service"
	"chem.app/api/internal/store"
)

var _ = Describe("UserService", func() {
	var (
		svc       service.UserService
		userStore *mockUserStore
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		userStore = &mockUserStore{}
		svc = service.NewUserService(userStore)
	})

	Describe("List", func() {
		It("defaults to id ascending with a cursor page", func() {
			var got query.Criteria
			userStore.listFn = func(_ context.Context, c query.Criteria) (query.Result[model.User], error) {
				got = c
				return query.Result[model.User]{}, nil
			}

			_, err := svc.List(ctx, url.Values{})

			Expect(err).NotTo(HaveOccurred())
			Expect(*got.Sort).To(Equal(query.Sort{Field: "id", Order: query.Asc}))
			Expect(got.Page.Kind).To(Equal(query.PageCursor))
			Expect(got.Page.Limit).To(Equal(query.DefaultLimit))
		})

		It("returns a next cursor only for a full page", func() {
			userStore.listFn = func(_ context.Context, c query.Criteria) (query.Result[model.User], error) {
				items := []model.User{{ID: 10}, {ID: 11}}
				if c.Page.After != nil {
					items = []model.User{{ID: 12}}
				}
				return query.Result[model.User]{Items: items, Total: 3}, nil
			}

			page, err := svc.List(ctx, url.Values{"limit": {"2"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.NextCursor).NotTo(BeNil())
			Expect(*page.NextCursor).To(Equal(int64(11)))

			page, err = svc.List(ctx, url.Values{"limit": {"2"}, "after": {"11"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.NextCursor).To(BeNil())
			Expect(page.Total).To(BeEquivalentTo(3))
		})

		It("rejects an invalid role filter", func() {
			_, err := svc.List(ctx, url.Values{"role": {"ROOT"}})
			Expect(service.KindOf(err)).To(Equal(service.KindValidation))
		})
	})

	Describe("Get", func() {
		It("maps a missing user to not found", func() {
			userStore.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Get(ctx, 5)
			Expect(err).To(MatchError("User not found"))
		})
	})
})
