package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProspectRequest_NormalizeDefaults(t *testing.T) {
	t.Parallel()

	req := CreateProspectRequest{BrandID: " b1 ", URL: " https://example.com/x "}
	req.Normalize()

	assert.Equal(t, "b1", req.BrandID)
	assert.Equal(t, "https://example.com/x", req.URL)
	assert.Equal(t, ProspectStatusNotContacted, req.Status)
}

func TestCreateProspectRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreateProspectRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  CreateProspectRequest{BrandID: "b1", URL: "https://example.com/x", Status: ProspectStatusContacted},
		},
		{
			name:    "missing brand",
			req:     CreateProspectRequest{URL: "https://example.com/x", Status: ProspectStatusContacted},
			wantErr: "brand_id is required",
		},
		{
			name:    "missing url",
			req:     CreateProspectRequest{BrandID: "b1", Status: ProspectStatusContacted},
			wantErr: "url is required",
		},
		{
			name:    "bogus status",
			req:     CreateProspectRequest{BrandID: "b1", URL: "https://example.com/x", Status: "maybe"},
			wantErr: "invalid status",
		},
		{
			name:    "negative rating",
			req:     CreateProspectRequest{BrandID: "b1", URL: "https://example.com/x", Status: ProspectStatusContacted, DomainRating: intRef(-1)},
			wantErr: "domain_rating cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestProspectStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range []ProspectStatus{
		ProspectStatusNotContacted, ProspectStatusContacted, ProspectStatusInNegotiation,
		ProspectStatusAgreed, ProspectStatusLinkPlaced, ProspectStatusRejected,
	} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, ProspectStatus("ghosted").Valid())
}

func TestUpdateProspectRequest_Validate(t *testing.T) {
	t.Parallel()

	var empty UpdateProspectRequest
	require.Error(t, empty.Validate())

	status := ProspectStatus(" Contacted ")
	req := UpdateProspectRequest{Status: &status}
	require.NoError(t, req.Validate())
	assert.Equal(t, ProspectStatusContacted, *req.Status)
}

func intRef(v int) *int { return &v }
