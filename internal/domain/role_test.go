package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "customer", want: RoleCustomer},
		{input: "consultant", want: RoleConsultant},
		{input: "staff", want: RoleStaff},
		{input: "admin", want: RoleAdmin},
		{input: "manager", wantErr: true},
		{input: "Consultant", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_Capabilities(t *testing.T) {
	assert.True(t, RoleConsultant.IsConsultant())
	assert.False(t, RoleCustomer.IsConsultant())
	assert.False(t, RoleStaff.IsConsultant())
	assert.False(t, RoleAdmin.IsConsultant())

	assert.True(t, RoleStaff.CanListAllConsultations())
	assert.True(t, RoleAdmin.CanListAllConsultations())
	assert.False(t, RoleCustomer.CanListAllConsultations())
	assert.False(t, RoleConsultant.CanListAllConsultations())
}
