// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package businessassociate

// Wire names of the business associate fields.
const (
	FieldName        = "BAName"
	FieldVendor      = "SAPVendor"
	FieldCustomer    = "SAPCustomer"
	FieldCompanyCode = "SAPCompanyCode"
)

// BusinessAssociate is a vendor or customer record owned by the remote system.
//
// Nullable fields are pointers without omitempty so that an explicit null
// survives a decode and re-encode. Values are returned by copy; an update
// yields a new record from the remote system.
type BusinessAssociate struct {
	BAID           int     `json:"BAID"`
	BAName         string  `json:"BAName"`
	SAPVendor      *string `json:"SAPVendor"`
	SAPCustomer    *string `json:"SAPCustomer"`
	SAPCompanyCode *int    `json:"SAPCompanyCode"`
}

// Envelope is the response wrapper used by every endpoint of the remote API.
// Data is meaningful only when Success is true.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

// CreateInput holds the arguments of a create call.
//
// Name is always sent. Optional fields are sent only when non-nil; a non-nil
// empty string is sent as "".
type CreateInput struct {
	Name        string
	Vendor      *string
	Customer    *string
	CompanyCode *int
}

// Fields returns the outbound payload for the create call.
func (in CreateInput) Fields() *Fields {
	return NewFields().
		Set(FieldName, in.Name).
		SetString(FieldVendor, in.Vendor).
		SetString(FieldCustomer, in.Customer).
		SetInt(FieldCompanyCode, in.CompanyCode)
}

// UpdateInput holds the arguments of a partial update.
//
// An empty string means "not provided" and is never sent, so a field cannot
// be cleared to "" through an update. CompanyCode is sent when non-nil.
type UpdateInput struct {
	Name        string
	Vendor      string
	Customer    string
	CompanyCode *int
}

// Fields returns the outbound payload for the update call.
func (in UpdateInput) Fields() *Fields {
	return NewFields().
		SetNonEmpty(FieldName, in.Name).
		SetNonEmpty(FieldVendor, in.Vendor).
		SetNonEmpty(FieldCustomer, in.Customer).
		SetInt(FieldCompanyCode, in.CompanyCode)
}
