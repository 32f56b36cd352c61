// Package provider implements the timetable side of the daemon: an HTTP
// client for the external prayer-time service plus a SQLite cache that
// keeps the schedule alive through provider outages and daemon restarts.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minaret/minaret/pkg/azanlib"
	"github.com/minaret/minaret/pkg/logger"
)

// timesDoc is the wire format of the external prayer-time service:
// a date plus a map of lowercase prayer names to "HH:MM" civil times.
type timesDoc struct {
	Date  string            `json:"date"`
	Times map[string]string `json:"times"`
}

// Config assembles an HTTPProvider.
type Config struct {
	// URL of the prayer-time service. The request date is appended as a
	// `date` query parameter.
	URL string

	// Location all parsed times are bound to.
	Location *time.Location

	// Enabled flags per prayer; a missing entry means enabled.
	Enabled map[azanlib.PrayerName]bool

	// Store, if set, caches fetched tables and restores the day's play log.
	Store *Store

	Client *http.Client
	Log    logger.Logger

	// now is overridable in tests.
	now func() time.Time
}

// HTTPProvider fetches today's timetable, degrading to the cached table
// when the service is unreachable.
type HTTPProvider struct {
	cfg Config
}

// New validates cfg and returns a provider.
func New(cfg Config) (*HTTPProvider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("timetable provider: empty url")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("timetable provider: invalid url: %w", err)
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Log == nil {
		cfg.Log = logger.NewNopLogger()
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &HTTPProvider{cfg: cfg}, nil
}

// TodayTable implements azanlib.TimeTableProvider. The returned table
// already carries today's persisted played set, so a restarted daemon or a
// mid-day manual refresh cannot re-fire an already-played prayer.
func (p *HTTPProvider) TodayTable(ctx context.Context) (*azanlib.TimeTable, error) {
	date := p.cfg.now().In(p.cfg.Location).Format(azanlib.DateLayout)

	table, err := p.fetch(ctx, date)
	if err != nil {
		if cached, ok := p.cached(date); ok {
			p.cfg.Log.Warning("timetable fetch failed (%v), serving cached table for %s", err, date)
			table = cached
		} else {
			return nil, fmt.Errorf("fetch timetable for %s: %w", date, err)
		}
	} else if p.cfg.Store != nil {
		if serr := p.cfg.Store.SaveTable(table); serr != nil {
			p.cfg.Log.Warning("failed to cache timetable: %v", serr)
		}
	}

	p.mergePlayed(table)
	return table, nil
}

func (p *HTTPProvider) fetch(ctx context.Context, date string) (*azanlib.TimeTable, error) {
	u, _ := url.Parse(p.cfg.URL)
	q := u.Query()
	q.Set("date", date)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.cfg.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("prayer-time service returned %s", resp.Status)
	}

	var doc timesDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode prayer times: %w", err)
	}
	return p.buildTable(date, &doc)
}

// buildTable converts the wire document into a timetable in the provider's
// location. Unknown keys are ignored; missing prayers are logged and
// skipped rather than failing the whole day.
func (p *HTTPProvider) buildTable(date string, doc *timesDoc) (*azanlib.TimeTable, error) {
	day, err := time.ParseInLocation(azanlib.DateLayout, date, p.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}

	var events []azanlib.Event
	for _, name := range azanlib.CanonicalPrayers {
		raw, ok := doc.Times[string(name)]
		if !ok {
			p.cfg.Log.Warning("prayer-time service omitted %s for %s", name, date)
			continue
		}
		hm, err := time.Parse("15:04", raw)
		if err != nil {
			return nil, fmt.Errorf("parse time %q for %s: %w", raw, name, err)
		}
		events = append(events, azanlib.Event{
			Name: name,
			Time: time.Date(day.Year(), day.Month(), day.Day(),
				hm.Hour(), hm.Minute(), 0, 0, p.cfg.Location),
			Enabled: p.enabled(name),
		})
	}

	t := azanlib.NewTimeTable(date, events)
	t.SortEvents()
	return t, nil
}

func (p *HTTPProvider) enabled(name azanlib.PrayerName) bool {
	if p.cfg.Enabled == nil {
		return true
	}
	on, ok := p.cfg.Enabled[name]
	return !ok || on
}

func (p *HTTPProvider) cached(date string) (*azanlib.TimeTable, bool) {
	if p.cfg.Store == nil {
		return nil, false
	}
	t, ok, err := p.cfg.Store.Table(date, p.cfg.Location)
	if err != nil {
		p.cfg.Log.Warning("failed to load cached timetable: %v", err)
		return nil, false
	}
	// Config-level enable flags override whatever was cached.
	if ok {
		for i := range t.Events {
			t.Events[i].Enabled = t.Events[i].Enabled && p.enabled(t.Events[i].Name)
		}
	}
	return t, ok
}

func (p *HTTPProvider) mergePlayed(t *azanlib.TimeTable) {
	if p.cfg.Store == nil {
		return
	}
	played, err := p.cfg.Store.PlayedOn(t.Date)
	if err != nil {
		p.cfg.Log.Warning("failed to load play log for %s: %v", t.Date, err)
		return
	}
	for name, at := range played {
		t.MarkPlayed(name, at)
	}
}

var _ azanlib.TimeTableProvider = (*HTTPProvider)(nil)
