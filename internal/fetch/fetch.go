// Package fetch retrieves a provider's published endpoint list and maps
// it onto feed records.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gavinmorrison/little-snitch-cloud-rules/internal/endpoint"
)

// DefaultMicrosoftURL is the worldwide Microsoft 365 endpoint feed.
const DefaultMicrosoftURL = "https://endpoints.office.com/endpoints/worldwide"

// Error reports a failed feed retrieval. It is fatal for the run: no
// rule file is written when the input set cannot be obtained.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetching endpoint feed %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Client fetches and decodes a provider endpoint feed.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient creates a feed client for the given URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
	}
}

// service is one entry of the Microsoft endpoint feed. Port lists come
// as comma-separated strings, IP prefixes as CIDR strings.
type service struct {
	ID                     int      `json:"id"`
	ServiceArea            string   `json:"serviceArea"`
	ServiceAreaDisplayName string   `json:"serviceAreaDisplayName"`
	URLs                   []string `json:"urls"`
	IPs                    []string `json:"ips"`
	TCPPorts               string   `json:"tcpPorts"`
	UDPPorts               string   `json:"udpPorts"`
	Category               string   `json:"category"`
	ExpressRoute           bool     `json:"expressRoute"`
	Required               bool     `json:"required"`
	Notes                  string   `json:"notes"`
}

// Fetch retrieves the feed and converts it to endpoint records. Every
// request carries a fresh clientrequestid, which the Microsoft API
// requires for tracking. Any failure to obtain or decode the feed
// returns a *Error.
func (c *Client) Fetch(ctx context.Context) ([]endpoint.Record, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, &Error{URL: c.BaseURL, Err: err}
	}
	q := u.Query()
	q.Set("clientrequestid", uuid.NewString())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &Error{URL: c.BaseURL, Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{URL: c.BaseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: c.BaseURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: c.BaseURL, Err: err}
	}

	services, err := decodeServices(body)
	if err != nil {
		return nil, &Error{URL: c.BaseURL, Err: err}
	}

	var records []endpoint.Record
	for _, svc := range services {
		recs, err := serviceRecords(svc)
		if err != nil {
			return nil, &Error{URL: c.BaseURL, Err: err}
		}
		records = append(records, recs...)
	}
	return records, nil
}

// decodeServices accepts both feed shapes: a bare JSON array and an
// object wrapping the array in a "values" field.
func decodeServices(body []byte) ([]service, error) {
	var services []service
	if err := json.Unmarshal(body, &services); err == nil {
		return services, nil
	}

	var wrapped struct {
		Values []service `json:"values"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	return wrapped.Values, nil
}

// serviceRecords flattens one feed service into endpoint records: one
// record per URL and protocol grouping, plus one record per protocol
// grouping carrying the service's IP prefixes. TCP and UDP stay
// separate because the feed publishes distinct port lists for them.
func serviceRecords(svc service) ([]endpoint.Record, error) {
	tcpPorts, err := endpoint.ParsePortList(svc.TCPPorts)
	if err != nil {
		return nil, fmt.Errorf("service %d tcpPorts: %w", svc.ID, err)
	}
	udpPorts, err := endpoint.ParsePortList(svc.UDPPorts)
	if err != nil {
		return nil, fmt.Errorf("service %d udpPorts: %w", svc.ID, err)
	}

	notes := buildNotes(svc)

	base := endpoint.Record{
		ServiceID:   svc.ID,
		ServiceArea: svc.ServiceArea,
		Category:    svc.Category,
		Required:    svc.Required,
		Notes:       notes,
	}

	groups := portGroups(tcpPorts, udpPorts)

	var records []endpoint.Record
	for _, u := range svc.URLs {
		for _, g := range groups {
			rec := base
			rec.HostPattern = u
			rec.Ports = g.ports
			rec.Protocols = g.protocols
			records = append(records, rec)
		}
	}
	if len(svc.IPs) > 0 {
		for _, g := range groups {
			rec := base
			rec.IPPrefixes = svc.IPs
			rec.Ports = g.ports
			rec.Protocols = g.protocols
			records = append(records, rec)
		}
	}
	return records, nil
}

type portGroup struct {
	ports     []int
	protocols []endpoint.Protocol
}

// portGroups returns the protocol groupings a service expands to: one
// per protocol with published ports, or a single unrestricted group
// when the service publishes none.
func portGroups(tcpPorts, udpPorts []int) []portGroup {
	var groups []portGroup
	if len(tcpPorts) > 0 {
		groups = append(groups, portGroup{ports: tcpPorts, protocols: []endpoint.Protocol{endpoint.TCP}})
	}
	if len(udpPorts) > 0 {
		groups = append(groups, portGroup{ports: udpPorts, protocols: []endpoint.Protocol{endpoint.UDP}})
	}
	if len(groups) == 0 {
		groups = append(groups, portGroup{})
	}
	return groups
}

// buildNotes assembles the metadata annotation carried on every rule
// generated from a service, mirroring the feed fields useful to an
// operator reviewing the rule group.
func buildNotes(svc service) string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+": "+value)
		}
	}
	add("id", strconv.Itoa(svc.ID))
	add("serviceArea", svc.ServiceArea)
	add("serviceAreaDisplayName", svc.ServiceAreaDisplayName)
	add("tcpPorts", svc.TCPPorts)
	add("udpPorts", svc.UDPPorts)
	add("category", svc.Category)
	add("expressRoute", strconv.FormatBool(svc.ExpressRoute))
	add("required", strconv.FormatBool(svc.Required))
	add("notes", svc.Notes)
	return strings.Join(parts, "\n")
}
