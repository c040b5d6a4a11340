package shippin_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/shippin/go-shippin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerificationCallbackSuccess(t *testing.T) {
	ctx := router.NewMockContext()
	ctx.QueriesM["verified"] = "true"
	ctx.On("Cookie", mock.Anything).Return()

	var redirectURL string
	ctx.On("Redirect", mock.Anything, []int{fiber.StatusSeeOther}).Run(func(args mock.Arguments) {
		redirectURL = args.String(0)
	}).Return(nil)

	handled, err := shippin.HandleVerificationCallback(ctx, shippin.RoleSeller)
	require.NoError(t, err)

	assert.True(t, handled)
	assert.Equal(t, "/seller/login", redirectURL, "redirect target carries no verified parameter")
}

func TestVerificationCallbackFailure(t *testing.T) {
	ctx := router.NewMockContext()
	ctx.QueriesM["verified"] = "false"
	ctx.On("Cookie", mock.Anything).Return()

	var redirectURL string
	ctx.On("Redirect", mock.Anything, []int{fiber.StatusSeeOther}).Run(func(args mock.Arguments) {
		redirectURL = args.String(0)
	}).Return(nil)

	handled, err := shippin.HandleVerificationCallback(ctx, shippin.RolePartner)
	require.NoError(t, err)

	assert.True(t, handled)
	assert.Equal(t, "/partner/login", redirectURL)
}

func TestVerificationCallbackIgnoresOtherValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "absent", value: ""},
		{name: "unexpected value", value: "maybe"},
		{name: "case sensitive", value: "True"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := router.NewMockContext()
			if tt.value != "" {
				ctx.QueriesM["verified"] = tt.value
			}

			handled, err := shippin.HandleVerificationCallback(ctx, shippin.RoleSeller)
			assert.NoError(t, err)
			assert.False(t, handled)
		})
	}
}
