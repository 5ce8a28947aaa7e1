package heynabo

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	"github.com/tidwall/gjson"
)

var (
	ErrNotConfigured = errs.New("heynabo base url is not configured")
	ErrInvalidFeed   = errs.New("heynabo returned an invalid feed")
	ErrFeedTooLarge  = errs.New("heynabo feed exceeds the size limit")
)

const (
	locationsPath = "/api/members/locations"
	membersPath   = "/api/members"
	eventsPath    = "/api/calendar/events"

	maxFeedBytes = 16 << 20
)

// Client reads the Heynabo member and calendar feeds
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg config.HeynaboConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errs.Wrap(err, "build heynabo request")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return "", errs.Wrapf(err, "read %s", path)
	}
	if len(body) > maxFeedBytes {
		return "", errs.Wrapf(ErrFeedTooLarge, "GET %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errs.Newf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return "", errs.Wrapf(ErrInvalidFeed, "GET %s", path)
	}
	return string(body), nil
}

// FetchHouseholds joins locations with their members
func (c *Client) FetchHouseholds(ctx context.Context) ([]shared.HouseholdRecord, error) {
	locations, err := c.get(ctx, locationsPath, nil)
	if err != nil {
		return nil, err
	}
	members, err := c.get(ctx, membersPath, nil)
	if err != nil {
		return nil, err
	}
	return ParseHouseholds(locations, members), nil
}

func (c *Client) FetchEvents(ctx context.Context, from, to time.Time) ([]shared.ExternalEvent, error) {
	q := url.Values{}
	q.Set("from", from.Format(time.DateOnly))
	q.Set("to", to.Format(time.DateOnly))
	body, err := c.get(ctx, eventsPath, q)
	if err != nil {
		return nil, err
	}
	return ParseEvents(body), nil
}

// ParseHouseholds normalizes the locations and members feeds. Members without an id or a known location are dropped.
func ParseHouseholds(locations, members string) []shared.HouseholdRecord {
	var out []shared.HouseholdRecord
	index := make(map[int64]int)

	list(locations).ForEach(func(_, loc gjson.Result) bool {
		id := loc.Get("id").Int()
		if id == 0 {
			return true
		}
		rec := shared.HouseholdRecord{
			HeynaboID: id,
			Name:      loc.Get("name").String(),
			Address:   loc.Get("address").String(),
		}
		if pbs := loc.Get("pbsId"); pbs.Exists() && pbs.Type != gjson.Null {
			v := pbs.Int()
			rec.PbsID = &v
		}
		if rec.Name == "" {
			rec.Name = rec.Address
		}
		index[id] = len(out)
		out = append(out, rec)
		return true
	})

	list(members).ForEach(func(_, m gjson.Result) bool {
		if m.Get("id").Int() == 0 {
			return true
		}
		i, ok := index[m.Get("locationId").Int()]
		if !ok {
			return true
		}
		inh := shared.InhabitantRecord{
			HeynaboID:   m.Get("id").Int(),
			Name:        m.Get("firstName").String(),
			LastName:    m.Get("lastName").String(),
			BirthDate:   date(m.Get("dateOfBirth")),
			MoveInDate:  date(m.Get("moveInDate")),
			MoveOutDate: date(m.Get("moveOutDate")),
			Role:        strings.ToUpper(m.Get("role").String()),
		}
		if email := m.Get("email").String(); email != "" {
			inh.Email = &email
		}
		out[i].Inhabitants = append(out[i].Inhabitants, inh)
		return true
	})
	return out
}

func ParseEvents(body string) []shared.ExternalEvent {
	var out []shared.ExternalEvent
	list(body).ForEach(func(_, e gjson.Result) bool {
		start := e.Get("start")
		if !start.Exists() {
			return true
		}
		t := start.Time()
		if t.IsZero() {
			if d := date(start); d != nil {
				t = *d
			} else {
				return true
			}
		}
		out = append(out, shared.ExternalEvent{
			HeynaboEventID: e.Get("id").Int(),
			Date:           t,
			Title:          e.Get("title").String(),
		})
		return true
	})
	return out
}

// list accepts either a bare array or an object with a "list" array
func list(body string) gjson.Result {
	r := gjson.Parse(body)
	if r.IsArray() {
		return r
	}
	return r.Get("list")
}

func date(r gjson.Result) *time.Time {
	if !r.Exists() || r.Type == gjson.Null || r.String() == "" {
		return nil
	}
	s := r.String()
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
