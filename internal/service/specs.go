package service

import (
	"slices"

	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
)

var (
	organizationTypes = []string{string(model.OrganizationTypeEndowment), string(model.OrganizationTypeDonation)}
	restrictions      = []string{string(model.RestrictionRestricted), string(model.RestrictionUnrestricted)}
	transactionTypes  = []string{
		string(model.TransactionTypeDonation),
		string(model.TransactionTypeWithdrawal),
		string(model.TransactionTypeInvestment),
		string(model.TransactionTypeExpense),
	}
	roles = []string{string(model.RoleUser), string(model.RoleAdmin)}
)

var organizationSpec = query.Spec{
	Filters: []query.Filter{
		{Param: "name", Kind: query.Text},
		{Param: "restriction", Kind: query.Enum, Values: restrictions},
		{Param: "type", Kind: query.Enum, Values: organizationTypes},
	},
	Sortable: []string{"id", "name", "type", "restriction", "units", "amount", "createdAt", "updatedAt"},
	Paging:   query.PageOffset,
}

var contributorSpec = query.Spec{
	Filters: []query.Filter{
		{Param: "firstName", Kind: query.Text},
		{Param: "lastName", Kind: query.Text},
		{Param: "organizationId", Kind: query.ID},
	},
	Sortable: []string{"id", "firstName", "lastName", "createdAt", "updatedAt"},
	Paging:   query.PageOffset,
}

// organizationContributorSpec ignores sort fields other than names.
var organizationContributorSpec = query.Spec{
	Sortable:    []string{"firstName", "lastName"},
	LenientSort: true,
	Paging:      query.PageOffset,
}

var transactionSorts = []string{"id", "date", "amount", "type", "units", "createdAt", "updatedAt"}

var transactionDefaultSort = &query.Sort{Field: "date", Order: query.Desc}

func transactionFilters(scoped ...string) []query.Filter {
	all := []query.Filter{
		{Param: "organizationId", Kind: query.ID},
		{Param: "contributorId", Kind: query.ID},
		{Param: "fundId", Kind: query.ID},
		{Param: "type", Kind: query.Enum, Values: transactionTypes},
		{Param: "startDate", Field: "date", Kind: query.DateFrom},
		{Param: "endDate", Field: "date", Kind: query.DateTo},
	}
	return slices.DeleteFunc(all, func(f query.Filter) bool {
		return slices.Contains(scoped, f.Param)
	})
}

var transactionSpec = query.Spec{
	Filters:     transactionFilters(),
	Sortable:    transactionSorts,
	DefaultSort: transactionDefaultSort,
	Paging:      query.PageOffset,
}

// Scoped listings drop the filter their scope already fixes.
var (
	organizationTransactionSpec = query.Spec{
		Filters:     transactionFilters("organizationId"),
		Sortable:    transactionSorts,
		DefaultSort: transactionDefaultSort,
		Paging:      query.PageOffset,
	}
	contributorTransactionSpec = query.Spec{
		Filters:     transactionFilters("contributorId"),
		Sortable:    transactionSorts,
		DefaultSort: transactionDefaultSort,
		Paging:      query.PageOffset,
	}
)

var userSpec = query.Spec{
	Filters: []query.Filter{
		{Param: "email", Kind: query.Text},
		{Param: "firstName", Kind: query.Text},
		{Param: "lastName", Kind: query.Text},
		{Param: "role", Kind: query.Enum, Values: roles},
		{Param: "organizationId", Kind: query.ID},
	},
	Sortable:    []string{"id", "email", "firstName", "lastName", "role", "createdAt"},
	DefaultSort: &query.Sort{Field: "id", Order: query.Asc},
	Paging:      query.PageCursor,
}
