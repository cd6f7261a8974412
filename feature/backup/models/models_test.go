package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  interface{ Validate() error }
		wantErr string
	}{
		{name: "valid build", record: &Build{ID: 1, Name: "Starter"}},
		{name: "build without id", record: &Build{Name: "Starter"}, wantErr: "missing build id"},
		{name: "build without name", record: &Build{ID: 1}, wantErr: "missing build name"},
		{name: "valid user", record: &UserProfile{ID: "u1"}},
		{name: "user without id", record: &UserProfile{}, wantErr: "missing user id"},
		{name: "valid order", record: &Order{ID: 1, OrderNumber: "FF100", UserID: "u1"}},
		{name: "order without number", record: &Order{ID: 1, UserID: "u1"}, wantErr: "missing order number"},
		{name: "order without user", record: &Order{ID: 1, OrderNumber: "FF100"}, wantErr: "missing user id"},
		{name: "valid inquiry", record: &Inquiry{ID: 1, Name: "Alice", Email: "alice@example.com"}},
		{name: "inquiry without email", record: &Inquiry{ID: 1, Name: "Alice"}, wantErr: "missing inquiry email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInquiryNaturalKey(t *testing.T) {
	q := &Inquiry{Name: "Alice", Email: "alice@example.com", Budget: "2000", UseCase: "gaming"}
	assert.Equal(t, "Alice|alice@example.com|2000|gaming", q.NaturalKey())

	// Case-sensitive: a different casing is a different key.
	upper := &Inquiry{Name: "ALICE", Email: "alice@example.com", Budget: "2000", UseCase: "gaming"}
	assert.NotEqual(t, q.NaturalKey(), upper.NaturalKey())
}

func TestOrderNaturalKeyIsOrderNumber(t *testing.T) {
	o := &Order{ID: 11, OrderNumber: "FF100"}
	assert.Equal(t, "FF100", o.NaturalKey())
	assert.Equal(t, "11", o.Identity())
}

func TestPlaceholderProfile(t *testing.T) {
	o := &Order{ID: 14, UserID: "ghost", CustomerName: "Casey", CustomerEmail: "casey@example.com"}
	p := PlaceholderProfile(o)
	assert.Equal(t, "ghost", p.ID)
	assert.Equal(t, "casey@example.com", p.Email)
	assert.Equal(t, "Casey", p.DisplayName)
	assert.True(t, p.Placeholder)
}

func TestPlaceholderProfileDefaults(t *testing.T) {
	o := &Order{ID: 14, UserID: "ghost"}
	p := PlaceholderProfile(o)
	assert.Equal(t, "ghost@placeholder.invalid", p.Email)
	assert.Equal(t, "Unknown User", p.DisplayName)
	require.NoError(t, p.Validate())
}

func TestCountsEqual(t *testing.T) {
	a := Counts{Builds: 3, Orders: 5, Users: 2, Inquiries: 1}
	assert.True(t, a.Equal(Counts{Builds: 3, Orders: 5, Users: 2, Inquiries: 1}))
	assert.False(t, a.Equal(Counts{Builds: 3, Orders: 5, Users: 3, Inquiries: 1}))
}
