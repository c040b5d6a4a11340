package shippin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shippin/go-shippin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializePasswordResetSuccess(t *testing.T) {
	var gotPath, gotEmail string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEmail = r.URL.Query().Get("email")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	handler := shippin.NewInitializePasswordResetHandler(shippin.NewClient(server.URL))

	var response *shippin.InitializePasswordResetResponse
	err := handler.Execute(context.Background(), shippin.InitializePasswordResetMessage{
		Role:  shippin.RoleSeller,
		Email: "seller+reset@example.com",
		OnResponse: func(resp *shippin.InitializePasswordResetResponse) {
			response = resp
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/seller/forgot_password", gotPath)
	assert.Equal(t, "seller+reset@example.com", gotEmail)

	require.NotNil(t, response)
	assert.True(t, response.Success)
	assert.Equal(t, shippin.ResetRequestedNotice, response.Notice)
}

func TestInitializePasswordResetPartnerEndpoint(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	handler := shippin.NewInitializePasswordResetHandler(shippin.NewClient(server.URL))

	err := handler.Execute(context.Background(), shippin.InitializePasswordResetMessage{
		Role:  shippin.RolePartner,
		Email: "partner@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "/partner/forgot_password", gotPath)
}

func TestInitializePasswordResetNoticeNeverVariesWithAccountExistence(t *testing.T) {
	// the backend answers 200 whether or not the account exists; the notice
	// the caller sees must be identical in both cases
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "known@example.com" {
			w.Write([]byte(`{"status":"reset link sent"}`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	handler := shippin.NewInitializePasswordResetHandler(shippin.NewClient(server.URL))

	notices := []string{}
	for _, email := range []string{"known@example.com", "unknown@example.com"} {
		err := handler.Execute(context.Background(), shippin.InitializePasswordResetMessage{
			Role:  shippin.RoleSeller,
			Email: email,
			OnResponse: func(resp *shippin.InitializePasswordResetResponse) {
				notices = append(notices, resp.Notice)
			},
		})
		require.NoError(t, err)
	}

	require.Len(t, notices, 2)
	assert.Equal(t, notices[0], notices[1])
}

func TestInitializePasswordResetValidation(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	handler := shippin.NewInitializePasswordResetHandler(shippin.NewClient(server.URL))

	for _, email := range []string{"", "not-an-email"} {
		err := handler.Execute(context.Background(), shippin.InitializePasswordResetMessage{
			Role:  shippin.RoleSeller,
			Email: email,
		})
		require.Error(t, err)
		assert.True(t, shippin.IsValidationError(err))
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
