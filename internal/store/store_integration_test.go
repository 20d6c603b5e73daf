package store_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"chem.app/api/common/id"
	"chem.app/api/core/db"
	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
	"chem.app/api/internal/store"
)

var _ = Describe("Stores against PostgreSQL", func() {
	var stores *store.Stores

	BeforeEach(func() {
		requireDatabase()
		stores = store.NewStores(database.Conn())
	})

	createOrg := func(name string) *model.Organization {
		org := &model.Organization{
			ID:          id.New(),
			Name:        name,
			Type:        model.OrganizationTypeEndowment,
			Restriction: model.RestrictionRestricted,
		}
		Expect(stores.Organizations().Create(ctx, org)).To(Succeed())
		return org
	}

	Describe("organizations", func() {
		It("rejects duplicate names and leaves the first intact", func() {
			first := createOrg("TechCorp")

			dup := &model.Organization{ID: id.New(), Name: "TechCorp", Type: model.OrganizationTypeDonation, Restriction: model.RestrictionUnrestricted}
			err := stores.Organizations().Create(ctx, dup)
			Expect(err).To(MatchError(store.ErrConflict))

			got, err := stores.Organizations().GetByID(ctx, first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Type).To(Equal(model.OrganizationTypeEndowment))
		})

		It("reports missing ids as not found on update and delete", func() {
			name := "Nobody"
			_, err := stores.Organizations().Update(ctx, 12345, model.OrganizationPatch{Name: &name})
			Expect(err).To(MatchError(store.ErrNotFound))

			_, err = stores.Organizations().Delete(ctx, 12345)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("keeps the total independent of the window", func() {
			for _, name := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
				createOrg(name)
			}

			page, err := stores.Organizations().List(ctx, query.Criteria{
				Sort: &query.Sort{Field: "name", Order: query.Desc},
				Page: query.Offset(1, 2),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(5))
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Items[0].Name).To(Equal("Delta"))
			Expect(page.Items[1].Name).To(Equal("Charlie"))

			past, err := stores.Organizations().List(ctx, query.Criteria{Page: query.Offset(50, 10)})
			Expect(err).NotTo(HaveOccurred())
			Expect(past.Items).To(BeEmpty())
			Expect(past.Total).To(BeEquivalentTo(5))
		})
	})

	Describe("contributor transactions", func() {
		It("returns Charlie's donations in date order", func() {
			org := createOrg("TechCorp")
			fund := id.New()
			_, err := database.Conn().Exec(ctx,
				"INSERT INTO funds (id, name, type, organization_id) VALUES ($1, 'General', 'DONATION', $2)", fund, org.ID)
			Expect(err).NotTo(HaveOccurred())

			charlie := &model.Contributor{ID: id.New(), FirstName: "Charlie", LastName: "Brown", OrganizationID: &org.ID}
			Expect(stores.Contributors().Create(ctx, charlie)).To(Succeed())

			for i, amount := range []int64{300, 100, 200} {
				day := []int{3, 1, 2}[i]
				tx := &model.Transaction{
					ID:             id.New(),
					OrganizationID: org.ID,
					ContributorID:  &charlie.ID,
					FundID:         &fund,
					Type:           model.TransactionTypeDonation,
					Date:           time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
					Amount:         decimal.NewFromInt(amount),
				}
				Expect(stores.Transactions().Create(ctx, tx)).To(Succeed())
			}

			res, err := stores.Transactions().List(ctx, query.Criteria{
				Sort: &query.Sort{Field: "date", Order: query.Asc},
				Page: query.Offset(0, 100),
			}.Where("contributorId", charlie.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Total).To(BeEquivalentTo(3))

			var amounts []string
			for _, tx := range res.Items {
				amounts = append(amounts, tx.Amount.String())
			}
			Expect(amounts).To(Equal([]string{"100", "200", "300"}))
		})
	})

	Describe("organization links", func() {
		It("refuses a second link for the same pair", func() {
			org := createOrg("TechCorp")
			c := &model.Contributor{ID: id.New(), FirstName: "Lucy", LastName: "van Pelt"}
			Expect(stores.Contributors().Create(ctx, c)).To(Succeed())

			_, err := stores.Contributors().Link(ctx, org.ID, c.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = stores.Contributors().Link(ctx, org.ID, c.ID)
			Expect(err).To(MatchError(store.ErrConflict))

			members, err := stores.Contributors().ListByOrganization(ctx, org.ID, query.Criteria{Page: query.Offset(0, 10)})
			Expect(err).NotTo(HaveOccurred())
			Expect(members.Total).To(BeEquivalentTo(1))
			Expect(members.Items[0].ID).To(Equal(c.ID))
		})

		It("filters contributors by linked organization", func() {
			home := createOrg("Home Fund")
			other := createOrg("Other Fund")
			c := &model.Contributor{ID: id.New(), FirstName: "Linus", LastName: "van Pelt", OrganizationID: &home.ID}
			Expect(stores.Contributors().Create(ctx, c)).To(Succeed())
			_, err := stores.Contributors().Link(ctx, other.ID, c.ID)
			Expect(err).NotTo(HaveOccurred())

			res, err := stores.Contributors().List(ctx, query.Criteria{Page: query.Offset(0, 10)}.Where("organizationId", other.ID))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Total).To(BeEquivalentTo(1))
			Expect(res.Items[0].ID).To(Equal(c.ID))
		})

		It("rolls back the contributor when the link fails", func() {
			c := &model.Contributor{ID: id.New(), FirstName: "Sally", LastName: "Brown"}
			err := database.WithTx(ctx, func(q db.DBTX) error {
				if err := store.NewStores(q).Contributors().Create(ctx, c); err != nil {
					return err
				}
				_, err := store.NewStores(q).Contributors().Link(ctx, 999, c.ID)
				return err
			})
			Expect(err).To(MatchError(store.ErrReference))

			_, err = stores.Contributors().GetByID(ctx, c.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
		})
	})

	Describe("users", func() {
		It("pages by cursor and loads the organization on login lookup", func() {
			org := createOrg("TechCorp")
			var ids []int64
			for i, email := range []string{"a@example.org", "b@example.org", "c@example.org"} {
				u := &model.User{
					ID:             id.New(),
					FirebaseUID:    "uid-" + email,
					Email:          email,
					FirstName:      "User",
					LastName:       string(rune('A' + i)),
					Role:           model.RoleUser,
					OrganizationID: org.ID,
				}
				Expect(stores.Users().Create(ctx, u)).To(Succeed())
				ids = append(ids, u.ID)
			}

			first, err := stores.Users().List(ctx, query.Criteria{
				Sort: &query.Sort{Field: "id", Order: query.Asc},
				Page: query.Cursor(nil, 2),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Items).To(HaveLen(2))
			Expect(first.Total).To(BeEquivalentTo(3))

			next, err := stores.Users().List(ctx, query.Criteria{
				Sort: &query.Sort{Field: "id", Order: query.Asc},
				Page: query.Cursor(&first.Items[1].ID, 2),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Items).To(HaveLen(1))
			Expect(next.Items[0].ID).To(Equal(ids[2]))
			Expect(next.Total).To(BeEquivalentTo(3))

			u, err := stores.Users().GetByFirebaseUID(ctx, "uid-b@example.org")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Organization).NotTo(BeNil())
			Expect(u.Organization.Name).To(Equal("TechCorp"))

			exists, err := stores.Users().ExistsByEmail(ctx, "c@example.org")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})
	})
})
