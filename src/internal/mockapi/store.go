// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mockapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ba "github.com/H0llyW00dzZ/business-associate-mcp/src/internal/businessassociate"
)

// ErrNotFound is returned when no record matches the requested type and id.
var ErrNotFound = errors.New("business associate not found")

// Field is one entry of a write body. Set reports whether the key was present;
// a present key with a JSON null leaves Value nil.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Changes holds the fields of a create or update body.
type Changes struct {
	Name        Field[string]
	Vendor      Field[string]
	Customer    Field[string]
	CompanyCode Field[int]
}

// DecodeChanges parses a write body keyed by the wire field names.
func DecodeChanges(body []byte) (Changes, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Changes{}, fmt.Errorf("decode body: %w", err)
	}

	var c Changes
	if err := decodeField(raw, ba.FieldName, &c.Name); err != nil {
		return Changes{}, err
	}
	if err := decodeField(raw, ba.FieldVendor, &c.Vendor); err != nil {
		return Changes{}, err
	}
	if err := decodeField(raw, ba.FieldCustomer, &c.Customer); err != nil {
		return Changes{}, err
	}
	if err := decodeField(raw, ba.FieldCompanyCode, &c.CompanyCode); err != nil {
		return Changes{}, err
	}
	return c, nil
}

func decodeField[T any](raw map[string]json.RawMessage, key string, f *Field[T]) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	f.Set = true
	if err := json.Unmarshal(v, &f.Value); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (c Changes) apply(rec *ba.BusinessAssociate) {
	if c.Name.Set && c.Name.Value != nil {
		rec.BAName = *c.Name.Value
	}
	if c.Vendor.Set {
		rec.SAPVendor = c.Vendor.Value
	}
	if c.Customer.Set {
		rec.SAPCustomer = c.Customer.Value
	}
	if c.CompanyCode.Set {
		rec.SAPCompanyCode = c.CompanyCode.Value
	}
}

// Store persists business associates in SQLite, partitioned by type.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a Store over a migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

// List returns all records of the given type ordered by id.
func (s *Store) List(ctx context.Context, baType string) ([]ba.BusinessAssociate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ba_id, ba_name, sap_vendor, sap_customer, sap_company_code
		 FROM business_associates WHERE ba_type = ? ORDER BY ba_id`,
		baType,
	)
	if err != nil {
		return nil, fmt.Errorf("list business associates: %w", err)
	}
	defer rows.Close()

	out := []ba.BusinessAssociate{}
	for rows.Next() {
		rec, err := scanAssociate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list business associates: %w", err)
	}
	return out, nil
}

// Get returns a single record.
func (s *Store) Get(ctx context.Context, baType string, id int) (*ba.BusinessAssociate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT ba_id, ba_name, sap_vendor, sap_customer, sap_company_code
		 FROM business_associates WHERE ba_type = ? AND ba_id = ?`,
		baType, id,
	)
	rec, err := scanAssociate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Create inserts a record built from c. The name must be set.
func (s *Store) Create(ctx context.Context, baType string, c Changes) (*ba.BusinessAssociate, error) {
	if !c.Name.Set || c.Name.Value == nil {
		return nil, fmt.Errorf("create business associate: %s is required", ba.FieldName)
	}

	var rec ba.BusinessAssociate
	c.apply(&rec)

	ts := s.timestamp()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO business_associates
		 (ba_type, ba_name, sap_vendor, sap_customer, sap_company_code, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		baType, rec.BAName, rec.SAPVendor, rec.SAPCustomer, rec.SAPCompanyCode, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("create business associate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create business associate: %w", err)
	}
	rec.BAID = int(id)
	return &rec, nil
}

// Update applies the fields present in c to an existing record and returns
// the result.
func (s *Store) Update(ctx context.Context, baType string, id int, c Changes) (*ba.BusinessAssociate, error) {
	rec, err := s.Get(ctx, baType, id)
	if err != nil {
		return nil, err
	}
	c.apply(rec)

	if _, err := s.db.ExecContext(ctx,
		`UPDATE business_associates
		 SET ba_name = ?, sap_vendor = ?, sap_customer = ?, sap_company_code = ?, updated_at = ?
		 WHERE ba_type = ? AND ba_id = ?`,
		rec.BAName, rec.SAPVendor, rec.SAPCustomer, rec.SAPCompanyCode, s.timestamp(), baType, id,
	); err != nil {
		return nil, fmt.Errorf("update business associate %d: %w", id, err)
	}
	return rec, nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, baType string, id int) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM business_associates WHERE ba_type = ? AND ba_id = ?`, baType, id)
	if err != nil {
		return fmt.Errorf("delete business associate %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete business associate %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssociate(sc scanner) (*ba.BusinessAssociate, error) {
	var (
		rec              ba.BusinessAssociate
		vendor, customer sql.NullString
		companyCode      sql.NullInt64
	)
	if err := sc.Scan(&rec.BAID, &rec.BAName, &vendor, &customer, &companyCode); err != nil {
		return nil, err
	}
	if vendor.Valid {
		rec.SAPVendor = &vendor.String
	}
	if customer.Valid {
		rec.SAPCustomer = &customer.String
	}
	if companyCode.Valid {
		code := int(companyCode.Int64)
		rec.SAPCompanyCode = &code
	}
	return &rec, nil
}
