package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"chem.app/api/internal/model"
	"chem.app/api/internal/service"
	"chem.app/api/internal/store"
)

var _ = Describe("TransactionService", func() {
	var (
		svc              service.TransactionService
		txStore          *mockTransactionStore
		orgStore         *mockOrganizationStore
		contributorStore *mockContributorStore
		fundStore        *mockFundStore
		ctx              context.Context
		input            service.CreateTransactionInput
	)

	BeforeEach(func() {
		ctx = context.Background()
		txStore = &mockTransactionStore{}
		orgStore = &mockOrganizationStore{}
		contributorStore = &mockContributorStore{}
		fundStore = &mockFundStore{}
		svc = service.NewTransactionService(txStore, orgStore, contributorStore, fundStore, &mockBroker{})

		amount := decimal.NewFromInt(100)
		input = service.CreateTransactionInput{
			OrganizationID: int64Ptr(1),
			ContributorID:  int64Ptr(2),
			FundID:         int64Ptr(3),
			Type:           "DONATION",
			Date:           "2024-01-01",
			Amount:         &amount,
		}
	})

	Describe("Create", func() {
		It("creates a transaction from complete input", func() {
			tx, err := svc.Create(ctx, input)

			Expect(err).NotTo(HaveOccurred())
			Expect(tx.ID).NotTo(BeZero())
			Expect(tx.Type).To(Equal(model.TransactionTypeDonation))
			Expect(tx.Date).To(Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
			Expect(tx.Amount.String()).To(Equal("100"))
			Expect(txStore.createCalls).To(Equal(1))
		})

		DescribeTable("rejects missing required fields without a store call",
			func(mutate func(in *service.CreateTransactionInput), field string) {
				mutate(&input)

				_, err := svc.Create(ctx, input)

				Expect(service.KindOf(err)).To(Equal(service.KindValidation))
				Expect(err.Error()).To(ContainSubstring(field))
				Expect(txStore.createCalls).To(BeZero())
			},
			Entry("organizationId", func(in *service.CreateTransactionInput) { in.OrganizationID = nil }, "organizationId"),
			Entry("contributorId", func(in *service.CreateTransactionInput) { in.ContributorID = nil }, "contributorId"),
			Entry("fundId", func(in *service.CreateTransactionInput) { in.FundID = nil }, "fundId"),
			Entry("type", func(in *service.CreateTransactionInput) { in.Type = "" }, "type"),
			Entry("date", func(in *service.CreateTransactionInput) { in.Date = "" }, "date"),
			Entry("amount", func(in *service.CreateTransactionInput) { in.Amount = nil }, "amount"),
		)

		DescribeTable("rejects malformed values",
			func(mutate func(in *service.CreateTransactionInput)) {
				mutate(&input)

				_, err := svc.Create(ctx, input)

				Expect(service.KindOf(err)).To(Equal(service.KindValidation))
				Expect(txStore.createCalls).To(BeZero())
			},
			Entry("unknown type", func(in *service.CreateTransactionInput) { in.Type = "GIFT" }),
			Entry("unparsable date", func(in *service.CreateTransactionInput) { in.Date = "01/02/2024" }),
			Entry("zero amount", func(in *service.CreateTransactionInput) { z := decimal.Zero; in.Amount = &z }),
			Entry("negative amount", func(in *service.CreateTransactionInput) { n := decimal.NewFromInt(-5); in.Amount = &n }),
		)

		It("names the missing fund", func() {
			fundStore.getByIDFn = func(_ context.Context, _ int64) (*model.Fund, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, input)

			Expect(err).To(MatchError("Fund not found"))
			Expect(txStore.createCalls).To(BeZero())
		})

		It("names the missing contributor", func() {
			contributorStore.getByIDFn = func(_ context.Context, _ int64) (*model.Contributor, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, input)
			Expect(err).To(MatchError("Contributor not found"))
		})
	})

	Describe("Update", func() {
		It("rejects an empty patch", func() {
			_, err := svc.Update(ctx, 9, service.UpdateTransactionInput{})
			Expect(service.KindOf(err)).To(Equal(service.KindValidation))
		})

		It("rejects non-positive amounts and unknown types", func() {
			zero := decimal.Zero
			_, err := svc.Update(ctx, 9, service.UpdateTransactionInput{Amount: &zero})
			Expect(service.KindOf(err)).To(Equal(service.KindValidation))

			typ := model.TransactionType("REFUND")
			_, err = svc.Update(ctx, 9, service.UpdateTransactionInput{Type: &typ})
			Expect(service.KindOf(err)).To(Equal(service.KindValidation))
		})

		It("reports a missing transaction as not found", func() {
			txStore.updateFn = func(_ context.Context, _ int64, _ model.TransactionPatch) (*model.Transaction, error) {
				return nil, store.ErrNotFound
			}
			desc := "corrected"

			_, err := svc.Update(ctx, 9, service.UpdateTransactionInput{Description: &desc})
			Expect(err).To(MatchError("Transaction not found"))
		})

		It("parses a date-only update as midnight UTC", func() {
			var got model.TransactionPatch
			txStore.updateFn = func(_ context.Context, id int64, patch model.TransactionPatch) (*model.Transaction, error) {
				got = patch
				return &model.Transaction{ID: id}, nil
			}
			date := "2024-01-02"

			_, err := svc.Update(ctx, 9, service.UpdateTransactionInput{Date: &date})

			Expect(err).NotTo(HaveOccurred())
			Expect(got.Date).To(HaveValue(BeTemporally("==", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))))
		})

		It("rejects an unparsable update date before touching the store", func() {
			called := false
			txStore.updateFn = func(_ context.Context, _ int64, _ model.TransactionPatch) (*model.Transaction, error) {
				called = true
				return nil, nil
			}
			date := "next tuesday"

			_, err := svc.Update(ctx, 9, service.UpdateTransactionInput{Date: &date})

			Expect(service.KindOf(err)).To(Equal(service.KindValidation))
			Expect(err).To(MatchError("date is not a valid date"))
			Expect(called).To(BeFalse())
		})
	})

	Describe("Delete", func() {
		It("reports a missing transaction as not found", func() {
			txStore.deleteFn = func(_ context.Context, _ int64) (*model.Transaction, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Delete(ctx, 9)
			Expect(service.KindOf(err)).To(Equal(service.KindNotFound))
		})
	})
})
