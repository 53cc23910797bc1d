package dashboard

import (
	"sort"

	"github.com/Wikid82/snare/internal/models"
)

// TopN is the length of every top list on the dashboard.
const TopN = 5

type HitsByType struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type HitsByIP struct {
	IPAddress string `json:"ipAddress"`
	Count     int    `json:"count"`
}

type HitsBySource struct {
	SourceName string `json:"sourceName"`
	Count      int    `json:"count"`
}

type HoneypotsByCampaign struct {
	CampaignName string `json:"campaignName"`
	Count        int    `json:"count"`
}

// Report is everything the dashboard charts show.
type Report struct {
	HitsByType   []HitsByType          `json:"hitsByType"`
	TopIPs       []HitsByIP            `json:"topIPs"`
	TopSources   []HitsBySource        `json:"topSources"`
	TopCampaigns []HoneypotsByCampaign `json:"topCampaigns"`
}

// BuildReport computes all dashboard aggregates from ds.
func BuildReport(ds Dataset) Report {
	lookup := NewLookup(ds.Sources, ds.Campaigns, nil, ds.Honeypots)
	return Report{
		HitsByType:   CountHitsByType(ds.Hits),
		TopIPs:       TopIPs(ds.Hits),
		TopSources:   topSources(ds.Hits, lookup),
		TopCampaigns: topCampaigns(ds.Honeypots, lookup),
	}
}

// CountHitsByType returns one entry per declared hit type, in declaration
// order. Hits of an unknown type are not counted.
func CountHitsByType(hits []models.Hit) []HitsByType {
	types := models.HitTypes()
	out := make([]HitsByType, len(types))
	index := make(map[models.HitType]int, len(types))
	for i, t := range types {
		out[i] = HitsByType{Type: t.String()}
		index[t] = i
	}
	for _, h := range hits {
		if i, ok := index[h.Type]; ok {
			out[i].Count++
		}
	}
	return out
}

// TopIPs returns the addresses with the most hits. Hits without an address
// are skipped.
func TopIPs(hits []models.Hit) []HitsByIP {
	var c counter
	for _, h := range hits {
		if h.IPAddress != "" {
			c.add(h.IPAddress)
		}
	}
	top := c.top(TopN)
	out := make([]HitsByIP, len(top))
	for i, e := range top {
		out[i] = HitsByIP{IPAddress: e.key, Count: e.count}
	}
	return out
}

// TopSources returns the sources with the most hits. Hits whose source does
// not resolve are skipped.
func TopSources(hits []models.Hit, sources []models.Source) []HitsBySource {
	return topSources(hits, NewLookup(sources, nil, nil, nil))
}

func topSources(hits []models.Hit, lookup *Lookup) []HitsBySource {
	var c counter
	for _, h := range hits {
		if name, ok := lookup.SourceName(h.SourceID); ok {
			c.add(name)
		}
	}
	top := c.top(TopN)
	out := make([]HitsBySource, len(top))
	for i, e := range top {
		out[i] = HitsBySource{SourceName: e.key, Count: e.count}
	}
	return out
}

// TopCampaigns returns the campaigns owning the most honeypots. Honeypots
// whose campaign does not resolve are skipped.
func TopCampaigns(honeypots []models.Honeypot, campaigns []models.Campaign) []HoneypotsByCampaign {
	return topCampaigns(honeypots, NewLookup(nil, campaigns, nil, nil))
}

func topCampaigns(honeypots []models.Honeypot, lookup *Lookup) []HoneypotsByCampaign {
	var c counter
	for _, hp := range honeypots {
		if name, ok := lookup.CampaignName(hp.CampaignID); ok {
			c.add(name)
		}
	}
	top := c.top(TopN)
	out := make([]HoneypotsByCampaign, len(top))
	for i, e := range top {
		out[i] = HoneypotsByCampaign{CampaignName: e.key, Count: e.count}
	}
	return out
}

type entry struct {
	key   string
	count int
}

// counter tallies keys while remembering first-seen order, which breaks
// ties in top().
type counter struct {
	entries []entry
	index   map[string]int
}

func (c *counter) add(key string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[key]
	if !ok {
		i = len(c.entries)
		c.index[key] = i
		c.entries = append(c.entries, entry{key: key})
	}
	c.entries[i].count++
}

func (c *counter) top(n int) []entry {
	sorted := make([]entry, len(c.entries))
	copy(sorted, c.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].count > sorted[j].count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
