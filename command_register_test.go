package shippin_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shippin/go-shippin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSellerSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	var hasAuth bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, hasAuth = r.Header["Authorization"]
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"email":"seller@example.com","id":"b0c1"}`))
	}))
	defer server.Close()

	handler := shippin.NewRegisterSellerHandler(shippin.NewClient(server.URL))

	var response *shippin.RegisterResponse
	err := handler.Execute(context.Background(), shippin.RegisterSellerMessage{
		Name:            "Acme Goods",
		Email:           "seller@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Zipcode:         570028,
		OnResponse: func(resp *shippin.RegisterResponse) {
			response = resp
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/seller/signup", gotPath)
	assert.False(t, hasAuth, "registration is anonymous")
	assert.Equal(t, "Acme Goods", gotBody["name"])
	assert.EqualValues(t, 570028, gotBody["zipcode"])
	assert.NotContains(t, gotBody, "ConfirmPassword")

	require.NotNil(t, response)
	assert.True(t, response.Success)
	assert.Equal(t, "seller@example.com", response.Email)
	assert.Equal(t, http.StatusCreated, response.Status)
}

func TestRegisterSellerValidation(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	handler := shippin.NewRegisterSellerHandler(shippin.NewClient(server.URL))

	tests := []struct {
		name    string
		message shippin.RegisterSellerMessage
	}{
		{
			name: "password mismatch",
			message: shippin.RegisterSellerMessage{
				Name: "Acme", Email: "seller@example.com",
				Password: "secret1", ConfirmPassword: "secret2",
				Zipcode: 570028,
			},
		},
		{
			name: "missing zipcode",
			message: shippin.RegisterSellerMessage{
				Name: "Acme", Email: "seller@example.com",
				Password: "secret1", ConfirmPassword: "secret1",
			},
		},
		{
			name: "short password",
			message: shippin.RegisterSellerMessage{
				Name: "Acme", Email: "seller@example.com",
				Password: "abc", ConfirmPassword: "abc",
				Zipcode: 570028,
			},
		},
		{
			name: "bad email",
			message: shippin.RegisterSellerMessage{
				Name: "Acme", Email: "not-an-email",
				Password: "secret1", ConfirmPassword: "secret1",
				Zipcode: 570028,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handler.Execute(context.Background(), tt.message)
			require.Error(t, err)
			assert.True(t, shippin.IsValidationError(err))
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestRegisterSellerBackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"email already registered"}`))
	}))
	defer server.Close()

	handler := shippin.NewRegisterSellerHandler(shippin.NewClient(server.URL))

	var called bool
	err := handler.Execute(context.Background(), shippin.RegisterSellerMessage{
		Name: "Acme", Email: "seller@example.com",
		Password: "secret1", ConfirmPassword: "secret1",
		Zipcode: 570028,
		OnResponse: func(resp *shippin.RegisterResponse) {
			called = true
		},
	})

	require.Error(t, err)
	assert.False(t, shippin.IsValidationError(err))
	assert.Equal(t, http.StatusBadRequest, shippin.StatusFromError(err))
	assert.False(t, called)
}

func TestRegisterSellerCancelledContext(t *testing.T) {
	handler := shippin.NewRegisterSellerHandler(shippin.NewClient("http://localhost:1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, shippin.RegisterSellerMessage{
		Name: "Acme", Email: "seller@example.com",
		Password: "secret1", ConfirmPassword: "secret1",
		Zipcode: 570028,
	})
	require.Error(t, err)
}

func TestParseZipcodes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
	}{
		{name: "single", input: "570028", expected: []int{570028}},
		{name: "multiple with spaces", input: "570028, 560001", expected: []int{570028, 560001}},
		{name: "junk entries discarded", input: "570028, abc, , 560001", expected: []int{570028, 560001}},
		{name: "negative discarded", input: "-1, 560001", expected: []int{560001}},
		{name: "all junk", input: "abc, ,", expected: []int{}},
		{name: "empty", input: "", expected: []int{}},
		{name: "trailing comma", input: "570028,", expected: []int{570028}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shippin.ParseZipcodes(tt.input))
		})
	}
}

func TestRegisterPartnerSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"email":"partner@example.com"}`))
	}))
	defer server.Close()

	handler := shippin.NewRegisterPartnerHandler(shippin.NewClient(server.URL))

	var response *shippin.RegisterResponse
	err := handler.Execute(context.Background(), shippin.RegisterPartnerMessage{
		Name:                "Fast Couriers",
		Email:               "partner@example.com",
		Password:            "secret1",
		ConfirmPassword:     "secret1",
		MaxHandlingCapacity: 10,
		Zipcodes:            "570028, abc, , 560001",
		OnResponse: func(resp *shippin.RegisterResponse) {
			response = resp
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "/partner/signup", gotPath)
	assert.EqualValues(t, 10, gotBody["max_handling_capacity"])

	zipcodes, ok := gotBody["serviceable_zipcodes"].([]any)
	require.True(t, ok, "parsed zipcodes go out on the wire")
	require.Len(t, zipcodes, 2)
	assert.EqualValues(t, 570028, zipcodes[0])
	assert.EqualValues(t, 560001, zipcodes[1])

	require.NotNil(t, response)
	assert.Equal(t, "partner@example.com", response.Email)
}

func TestRegisterPartnerZipcodeListValidation(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	handler := shippin.NewRegisterPartnerHandler(shippin.NewClient(server.URL))

	err := handler.Execute(context.Background(), shippin.RegisterPartnerMessage{
		Name:                "Fast Couriers",
		Email:               "partner@example.com",
		Password:            "secret1",
		ConfirmPassword:     "secret1",
		MaxHandlingCapacity: 10,
		Zipcodes:            "abc, ,",
	})

	require.Error(t, err)
	assert.True(t, shippin.IsValidationError(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestRegisterResponseEmailFallsBackToSubmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	handler := shippin.NewRegisterSellerHandler(shippin.NewClient(server.URL))

	var response *shippin.RegisterResponse
	err := handler.Execute(context.Background(), shippin.RegisterSellerMessage{
		Name: "Acme", Email: "seller@example.com",
		Password: "secret1", ConfirmPassword: "secret1",
		Zipcode: 570028,
		OnResponse: func(resp *shippin.RegisterResponse) {
			response = resp
		},
	})
	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, "seller@example.com", response.Email)
}
