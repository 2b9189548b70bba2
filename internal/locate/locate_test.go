package locate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/skycast/internal/models"
)

func TestParseBrowserReport(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		want    models.Coordinates
		wantErr error
	}{
		{
			name: "position",
			form: url.Values{"lat": {"52.5"}, "lon": {"13.4"}},
			want: models.Coordinates{Lat: 52.5, Lon: 13.4},
		},
		{
			name:    "permission denied",
			form:    url.Values{"error": {"1"}},
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "unsupported",
			form:    url.Values{"error": {"unsupported"}},
			wantErr: ErrNotSupported,
		},
		{
			name:    "timeout",
			form:    url.Values{"error": {"3"}, "message": {"Timeout expired"}},
			wantErr: ErrUnavailable,
		},
		{
			name:    "malformed",
			form:    url.Values{"lat": {"north"}, "lon": {"13.4"}},
			wantErr: ErrUnavailable,
		},
		{
			name:    "out of range",
			form:    url.Values{"lat": {"95"}, "lon": {"13.4"}},
			wantErr: ErrUnavailable,
		},
		{
			name:    "empty",
			form:    url.Values{},
			wantErr: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBrowserReport(tt.form).Resolve(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFixed(t *testing.T) {
	got, err := Fixed{Lat: 48.85, Lon: 2.35}.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Lat: 48.85, Lon: 2.35}, got)

	_, err = Fixed{Lat: 0, Lon: 200}.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestIPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","city":"Berlin","lat":52.5,"lon":13.4}`))
	}))
	defer srv.Close()

	got, err := NewIPSource(srv.URL).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Coordinates{Lat: 52.5, Lon: 13.4}, got)
}

func TestIPSource_Fail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	_, err := NewIPSource(srv.URL).Resolve(context.Background())
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Contains(t, err.Error(), "private range")
}

func TestIPSource_Transport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewIPSource(srv.URL).Resolve(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestName(t *testing.T) {
	assert.Equal(t, "browser", Name(BrowserReport{}))
	assert.Equal(t, "ip", Name(NewIPSource("")))
	assert.Equal(t, "fixed", Name(Fixed{}))
}
