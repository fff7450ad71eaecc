package heroesprofile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samuro/internal/ladder"
)

func testClient(handler http.HandlerFunc) (*Client, func()) {
	srv := httptest.NewServer(handler)
	c := &Client{
		baseURL: srv.URL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
	return c, srv.Close
}

func TestLookupExtractsStormRating(t *testing.T) {
	c, closeFn := testClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Samuro#1234", r.URL.Query().Get("searched_battletag"))
		w.Write([]byte(`<html><div class="gamemode">Storm League</div>
			<div class="rating"><span>2748 MMR</span></div></html>`))
	})
	defer closeFn()

	mmr, err := c.Lookup(context.Background(), "Samuro#1234")
	require.NoError(t, err)
	assert.Equal(t, 2748, mmr)
}

func TestLookupNoRatingOnPage(t *testing.T) {
	c, closeFn := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>No player found</html>`))
	})
	defer closeFn()

	_, err := c.Lookup(context.Background(), "Nobody#0000")
	assert.ErrorIs(t, err, ladder.ErrNoStormRating)
}

func TestLookupBadStatus(t *testing.T) {
	c, closeFn := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer closeFn()

	_, err := c.Lookup(context.Background(), "Samuro#1234")
	assert.Error(t, err)
}
