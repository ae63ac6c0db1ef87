// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mockapi

import (
	"context"
	"testing"

	ba "github.com/H0llyW00dzZ/business-associate-mcp/src/internal/businessassociate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestDecodeChanges(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Changes
	}{
		{
			name: "name only",
			body: `{"BAName":"Acme"}`,
			want: Changes{Name: Field[string]{Set: true, Value: ptr("Acme")}},
		},
		{
			name: "explicit null vendor",
			body: `{"SAPVendor":null,"SAPCompanyCode":12}`,
			want: Changes{
				Vendor:      Field[string]{Set: true},
				CompanyCode: Field[int]{Set: true, Value: ptr(12)},
			},
		},
		{
			name: "empty object",
			body: `{}`,
			want: Changes{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeChanges([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DecodeChanges([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newTestDB(t))

	list, err := s.List(ctx, "vendor")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	created, err := s.Create(ctx, "vendor", Changes{
		Name:        Field[string]{Set: true, Value: ptr("Acme Corp")},
		Vendor:      Field[string]{Set: true, Value: ptr("V100")},
		CompanyCode: Field[int]{Set: true, Value: ptr(200)},
	})
	require.NoError(t, err)
	assert.Equal(t, ba.BusinessAssociate{
		BAID: created.BAID, BAName: "Acme Corp", SAPVendor: ptr("V100"), SAPCompanyCode: ptr(200),
	}, *created)
	assert.Positive(t, created.BAID)

	_, err = s.Create(ctx, "customer", Changes{Name: Field[string]{Set: true, Value: ptr("Globex")}})
	require.NoError(t, err)

	list, err = s.List(ctx, "vendor")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])

	updated, err := s.Update(ctx, "vendor", created.BAID, Changes{
		Vendor:   Field[string]{Set: true},
		Customer: Field[string]{Set: true, Value: ptr("C9")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.BAName)
	assert.Nil(t, updated.SAPVendor)
	assert.Equal(t, ptr("C9"), updated.SAPCustomer)
	assert.Equal(t, ptr(200), updated.SAPCompanyCode)

	got, err := s.Get(ctx, "vendor", created.BAID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = s.Get(ctx, "customer", created.BAID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "vendor", created.BAID))
	assert.ErrorIs(t, s.Delete(ctx, "vendor", created.BAID), ErrNotFound)

	_, err = s.Update(ctx, "vendor", created.BAID, Changes{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCreateRequiresName(t *testing.T) {
	s := NewStore(newTestDB(t))
	_, err := s.Create(context.Background(), "vendor", Changes{})
	assert.Error(t, err)
}
