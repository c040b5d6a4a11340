package shippin_test

import (
	"testing"

	"github.com/shippin/go-shippin"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected shippin.Role
		valid    bool
	}{
		{name: "seller", input: "seller", expected: shippin.RoleSeller, valid: true},
		{name: "partner", input: "partner", expected: shippin.RolePartner, valid: true},
		{name: "unknown role", input: "admin", valid: false},
		{name: "empty string", input: "", valid: false},
		{name: "case sensitive", input: "Seller", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := shippin.ParseRole(tt.input)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.expected, role)
			}
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, shippin.RoleSeller.IsValid())
	assert.True(t, shippin.RolePartner.IsValid())
	assert.False(t, shippin.Role("courier").IsValid())
}

func TestEndpointsForEveryRoleFullyPopulated(t *testing.T) {
	for _, role := range shippin.AllRoles() {
		endpoints := shippin.EndpointsFor(role)

		assert.NotEmpty(t, endpoints.Login, "login endpoint for %s", role)
		assert.NotEmpty(t, endpoints.Signup, "signup endpoint for %s", role)
		assert.NotEmpty(t, endpoints.ForgotPassword, "forgot password endpoint for %s", role)
		assert.NotEmpty(t, endpoints.Profile, "profile endpoint for %s", role)
		assert.NotEmpty(t, endpoints.Shipments, "shipments endpoint for %s", role)
		assert.NotEmpty(t, endpoints.Logout, "logout endpoint for %s", role)
		assert.NotEmpty(t, endpoints.LoginRoute, "login route for %s", role)
	}
}

func TestEndpointsForRoleScoping(t *testing.T) {
	seller := shippin.EndpointsFor(shippin.RoleSeller)
	partner := shippin.EndpointsFor(shippin.RolePartner)

	assert.Equal(t, "/seller/login", seller.Login)
	assert.Equal(t, "/partner/login", partner.Login)
	assert.Equal(t, "/seller/forgot_password", seller.ForgotPassword)
	assert.Equal(t, "/partner/signup", partner.Signup)
	assert.NotEqual(t, seller.Shipments, partner.Shipments)
}
