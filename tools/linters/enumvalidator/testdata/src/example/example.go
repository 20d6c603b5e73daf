package example

type OrganizationType string

const (
	OrganizationTypeEndowment OrganizationType = "Endowment"
	OrganizationTypeDonation  OrganizationType = "Donation"
)

type TransactionType string

const (
	TransactionTypeDonation TransactionType = "DONATION"
)

// Label has no constants, so it is a plain string type.
type Label string

type Organization struct {
	Type  OrganizationType
	Label Label
}

type Transaction struct {
	Type *TransactionType
}

func bad() {
	o := &Organization{}
	o.Type = "Trust" // want "enum field Type assigned string literal"

	_ = Organization{Type: "Endowment"} // want "enum field Type assigned string literal"
}

func good() {
	o := &Organization{}
	o.Type = OrganizationTypeDonation // OK: using constant
	o.Label = "free text"             // OK: not an enum

	typ := TransactionTypeDonation
	_ = Transaction{Type: &typ}
}

func alsoGood(raw string) {
	// OK: conversion, validated by the caller
	o := &Organization{Type: OrganizationType(raw)}
	_ = o
}
