package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
		errAny  bool
		want    sample
	}{
		{name: "valid", body: `{"name":"cube","count":2}`, want: sample{Name: "cube", Count: 2}},
		{name: "unknown fields ignored", body: `{"name":"cube","extra":true}`, want: sample{Name: "cube"}},
		{name: "empty", body: ``, wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"name":`, errAny: true},
		{name: "trailing value", body: `{"name":"a"}{"name":"b"}`, errAny: true},
		{name: "wrong type", body: `{"count":"two"}`, errAny: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var got sample
			err := DecodeJSON(httptest.NewRecorder(), req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errAny:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	body := `{"name":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var got sample
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &got))
}

func TestValidateRequestUsesJSONNames(t *testing.T) {
	t.Parallel()

	err := ValidateRequest(&sample{Count: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'name'")
	assert.NoError(t, ValidateRequest(&sample{Name: "ok"}))
}
