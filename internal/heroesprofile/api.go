package heroesprofile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"samuro/internal/ladder"
)

const defaultBaseURL = "https://www.heroesprofile.com"

// mmrPattern matches the Storm League rating on a player profile page.
var mmrPattern = regexp.MustCompile(`Storm League[\s\S]{0,400}?(\d{3,4})\s*MMR`)

// Client resolves initial ratings from heroesprofile.com profile pages.
// It implements ladder.RatingLookup.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a heroesprofile client.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Lookup fetches the profile page for a battle tag and extracts the Storm
// League MMR. Returns ladder.ErrNoStormRating when the page has none.
func (c *Client) Lookup(ctx context.Context, battleTag string) (int, error) {
	u := fmt.Sprintf("%s/Search/?searched_battletag=%s", c.baseURL, url.QueryEscape(battleTag))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("heroesprofile returned status %d", resp.StatusCode)
	}

	// Profile pages are a few hundred KB; cap the read anyway.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return 0, err
	}

	m := mmrPattern.FindSubmatch(body)
	if m == nil {
		return 0, ladder.ErrNoStormRating
	}
	mmr, err := strconv.Atoi(string(m[1]))
	if err != nil || mmr <= 0 {
		return 0, ladder.ErrNoStormRating
	}
	return mmr, nil
}
