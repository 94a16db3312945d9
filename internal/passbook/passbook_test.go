package passbook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"Cryptbook/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookJSON = `{
  "id": "a1b2c3d4",
  "filename": "password_book_a1b2c3d4.json",
  "created": "2024-11-02T14:30:00Z",
  "rounds": 3,
  "originalFile": "report.pdf",
  "metadata": {
    "encryption_time": "2024-11-02T14:29:58.123456",
    "total_rounds": 3,
    "original_filename": "report.pdf",
    "original_hash": "9f86d081"
  }
}`

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.URL.Path {
		case "/api/password_books/a1b2c3d4":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(bookJSON))
		case "/api/password_books/broken":
			_, _ = w.Write([]byte(`{"id":`))
		case "/api/password_books/other":
			_, _ = w.Write([]byte(`{"id":"someone-else"}`))
		case "/api/password_books/boom":
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/password_books/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMetadata(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL + "/")
	require.NoError(t, err)

	m, err := c.FetchMetadata(context.Background(), "a1b2c3d4")
	require.NoError(t, err)

	assert.Equal(t, "a1b2c3d4", m.ID)
	assert.Equal(t, "password_book_a1b2c3d4.json", m.Filename)
	assert.Equal(t, 3, m.Rounds)
	assert.Equal(t, "report.pdf", m.OriginalFile)
	assert.Equal(t, 3, m.Details.TotalRounds)
	assert.Equal(t, "report.pdf", m.Details.OriginalFilename)
	assert.Equal(t, "9f86d081", m.Details.OriginalHash)
	assert.Equal(t, time.Date(2024, 11, 2, 14, 30, 0, 0, time.UTC), m.Created.Time)
	assert.Equal(t, 58, m.Details.EncryptionTime.Second())
	assert.Equal(t, "2024-11-02 14:29:58", m.Details.EncryptionTime.String())
}

func TestFetchMetadataUnknownID(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	m, err := c.FetchMetadata(context.Background(), "unknown-id")
	assert.Nil(t, m, "no placeholder data for unknown ids")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "unknown-id", nf.ID)
}

func TestFetchMetadataFailures(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	tests := []struct {
		id     string
		target error
		status int
	}{
		{"broken", errors.ErrInvalidResponse, 200},
		{"other", errors.ErrInvalidResponse, 200},
		{"boom", nil, 500},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			m, err := c.FetchMetadata(context.Background(), tt.id)
			assert.Nil(t, m)
			var fe *errors.FetchError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.status, fe.Status)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target))
			}
			assert.False(t, errors.IsNotFound(err))
		})
	}

	_, err = c.FetchMetadata(context.Background(), "  ")
	assert.True(t, errors.Is(err, errors.ErrEmptyID))
}

func TestFetchMetadataRejectsDotSegments(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	for _, id := range []string{".", "..", " .. "} {
		m, err := c.FetchMetadata(context.Background(), id)
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, errors.ErrInvalidID), "id %q: %v", id, err)
	}
	assert.Zero(t, hits.Load(), "no request may leave for a dot segment")
}

func TestFetchAsyncCancel(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	ch := FetchAsync(ctx, c, "slow")
	cancel()

	select {
	case res := <-ch:
		assert.Nil(t, res.Metadata)
		assert.True(t, errors.Is(res.Err, context.Canceled), "got %v", res.Err)
	case <-time.After(3 * time.Second):
		t.Fatal("cancelled fetch did not return")
	}

	_, open := <-ch
	assert.False(t, open)
}

func TestFetchAsyncDelivers(t *testing.T) {
	srv := newBackend(t)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	res := <-FetchAsync(context.Background(), c, "a1b2c3d4")
	require.NoError(t, res.Err)
	assert.Equal(t, "a1b2c3d4", res.Metadata.ID)

	res = <-FetchAsync(context.Background(), c, "unknown-id")
	assert.True(t, errors.IsNotFound(res.Err))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	assert.Error(t, err)
	_, err = NewClient("://nope")
	assert.Error(t, err)
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{`"2024-01-02T03:04:05Z"`, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), false},
		{`"2024-01-02T03:04:05+02:00"`, time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC), false},
		{`"2024-01-02T03:04:05"`, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), false},
		{`"2024-01-02 03:04:05.5"`, time.Date(2024, 1, 2, 3, 4, 5, 5e8, time.UTC), false},
		{`"2024-01-02"`, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{`null`, time.Time{}, false},
		{`""`, time.Time{}, false},
		{`"yesterday"`, time.Time{}, true},
		{`42`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}

	out, err := json.Marshal(Timestamp{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02T03:04:05Z"`, string(out))
	assert.Equal(t, "-", Timestamp{}.String())
	assert.True(t, strings.HasPrefix(Timestamp{time.Now()}.String(), "20"))
}

func TestMetadataFields(t *testing.T) {
	var m Metadata
	require.NoError(t, json.Unmarshal([]byte(bookJSON), &m))

	fields := m.Fields()
	byName := make(map[string]string, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Value
	}
	assert.Equal(t, "ID", fields[0].Name)
	assert.Equal(t, "a1b2c3d4", byName["ID"])
	assert.Equal(t, "2024-11-02 14:30:00", byName["Created"])
	assert.Equal(t, "3", byName["Rounds"])
	assert.Equal(t, "9f86d081", byName["Original hash"])
	assert.Equal(t, "report.pdf", byName["Original filename"])
	assert.Len(t, fields, 9)

	empty := (&Metadata{}).Fields()
	for _, f := range empty {
		assert.NotEmpty(t, f.Value, f.Name)
	}
}
