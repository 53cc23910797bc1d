package dashboard

import "github.com/Wikid82/snare/internal/models"

// DeletedPlaceholder is shown in place of a reference whose target no longer
// exists.
const DeletedPlaceholder = "DELETED"

// Lookup resolves reference ids to display names. Build one per view and
// reuse it for every row.
type Lookup struct {
	sources   map[uint]string
	campaigns map[uint]string
	listeners map[uint]string
	honeypots map[uint]string
}

// NewLookup indexes the given records. Any argument may be nil.
func NewLookup(sources []models.Source, campaigns []models.Campaign, listeners []models.Listener, honeypots []models.Honeypot) *Lookup {
	l := &Lookup{
		sources:   make(map[uint]string, len(sources)),
		campaigns: make(map[uint]string, len(campaigns)),
		listeners: make(map[uint]string, len(listeners)),
		honeypots: make(map[uint]string, len(honeypots)),
	}
	for _, s := range sources {
		l.sources[s.ID] = s.Name
	}
	for _, c := range campaigns {
		l.campaigns[c.ID] = c.Name
		// Campaign payloads embed their honeypots; index them too so callers
		// that never fetched /honeypot still resolve names.
		for _, hp := range c.Honeypots {
			if hp.ID != 0 {
				l.honeypots[hp.ID] = hp.Name
			}
		}
	}
	for _, ln := range listeners {
		l.listeners[ln.ID] = ln.Name
	}
	for _, hp := range honeypots {
		l.honeypots[hp.ID] = hp.Name
	}
	return l
}

func (l *Lookup) SourceName(id uint) (string, bool) {
	name, ok := l.sources[id]
	return name, ok
}

func (l *Lookup) CampaignName(id uint) (string, bool) {
	name, ok := l.campaigns[id]
	return name, ok
}

// SourceLabel, CampaignLabel, ListenerLabel and HoneypotLabel return the
// display text for a reference: empty for a zero id, the placeholder when
// the id does not resolve.
func (l *Lookup) SourceLabel(id uint) string   { return label(l.sources, id) }
func (l *Lookup) CampaignLabel(id uint) string { return label(l.campaigns, id) }
func (l *Lookup) ListenerLabel(id uint) string { return label(l.listeners, id) }
func (l *Lookup) HoneypotLabel(id uint) string { return label(l.honeypots, id) }

func label(names map[uint]string, id uint) string {
	if id == 0 {
		return ""
	}
	if name, ok := names[id]; ok {
		return name
	}
	return DeletedPlaceholder
}
