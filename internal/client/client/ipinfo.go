package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/client/models"
)

// DefaultLookupBaseURL is the public ipinfo.io endpoint.
const DefaultLookupBaseURL = "https://ipinfo.io"

// IPInfoLocator resolves addresses with the ipinfo.io JSON API.
type IPInfoLocator struct {
	baseURL    string
	token      string
	httpClient *http.Client
	timeout    time.Duration
}

// LocatorOption configures an IPInfoLocator.
type LocatorOption func(*IPInfoLocator)

func WithLookupBaseURL(u string) LocatorOption {
	return func(l *IPInfoLocator) { l.baseURL = u }
}

// WithLookupToken sets the ipinfo access token sent as ?token=.
func WithLookupToken(token string) LocatorOption {
	return func(l *IPInfoLocator) { l.token = token }
}

func WithLookupHTTPClient(hc *http.Client) LocatorOption {
	return func(l *IPInfoLocator) { l.httpClient = hc }
}

func WithLookupTimeout(d time.Duration) LocatorOption {
	return func(l *IPInfoLocator) { l.timeout = d }
}

func NewIPInfoLocator(opts ...LocatorOption) *IPInfoLocator {
	l := &IPInfoLocator{
		baseURL:    DefaultLookupBaseURL,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type ipinfoResponse struct {
	IP       string          `json:"ip"`
	City     string          `json:"city"`
	Region   string          `json:"region"`
	Country  string          `json:"country"`
	Loc      string          `json:"loc"`
	Org      string          `json:"org"`
	Timezone string          `json:"timezone"`
	Bogon    bool            `json:"bogon"`
	Error    json.RawMessage `json:"error"`
}

// Lookup fetches the record for address, or for the caller when address is
// empty. Bogon and unknown addresses yield ErrLookupMiss.
func (l *IPInfoLocator) Lookup(ctx context.Context, address string) (*models.GeoRecord, error) {
	reqURL, err := l.lookupURL(address)
	if err != nil {
		return nil, err
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(headerUserAgent, userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mapTransportError(err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrLookupMiss, address)
	}
	if resp.StatusCode >= 400 {
		return nil, parseError(resp.StatusCode, body)
	}

	var data ipinfoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if data.Bogon || len(data.Error) > 0 || data.IP == "" {
		return nil, fmt.Errorf("%w: %s", ErrLookupMiss, address)
	}

	record := &models.GeoRecord{
		Address:      data.IP,
		City:         data.City,
		Region:       data.Region,
		Country:      data.Country,
		Organization: data.Org,
		Timezone:     data.Timezone,
	}
	if c, ok := models.ParseLoc(data.Loc); ok {
		record.Coordinates = c
	}
	return record, nil
}

func (l *IPInfoLocator) lookupURL(address string) (string, error) {
	var (
		u   string
		err error
	)
	if address == "" {
		u, err = url.JoinPath(l.baseURL, "json")
	} else {
		u, err = url.JoinPath(l.baseURL, url.PathEscape(address), "json")
	}
	if err != nil {
		return "", fmt.Errorf("failed to build URL: %w", err)
	}
	if l.token == "" {
		return u, nil
	}
	return u + "?" + url.Values{"token": {l.token}}.Encode(), nil
}
