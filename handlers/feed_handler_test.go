package handlers

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminIDFromClaims(t *testing.T) {
	adminID := uuid.New()

	tests := []struct {
		name    string
		claims  jwt.MapClaims
		want    uuid.UUID
		wantErr bool
	}{
		{name: "valid claim", claims: jwt.MapClaims{"user_id": adminID.String(), "role": "admin"}, want: adminID},
		{name: "missing claim", claims: jwt.MapClaims{"role": "admin"}, wantErr: true},
		{name: "non-string claim", claims: jwt.MapClaims{"user_id": 42}, wantErr: true},
		{name: "malformed uuid", claims: jwt.MapClaims{"user_id": "not-a-uuid"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := adminIDFromClaims(tc.claims)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
