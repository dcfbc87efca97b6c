package room

import (
	"fmt"
	"sort"
)

// PresenceRegistry is the bidirectional connection↔name mapping.
// Names are unique at any instant; it owns the session bindings and no
// other component mutates them.
type PresenceRegistry struct {
	nameByConn map[string]string // connection id → assigned name
	connByName map[string]string // assigned name → connection id
}

// NewPresenceRegistry creates an empty registry.
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		nameByConn: make(map[string]string),
		connByName: make(map[string]string),
	}
}

// Join binds the connection to a unique display name derived from
// requestedName, appending "#1", "#2", ... on collision, and returns the
// assigned name. The suffixed result is the session's permanent name for
// its lifetime. Join always succeeds; filtering empty names is the
// caller's responsibility.
func (p *PresenceRegistry) Join(connId, requestedName string) string {
	assigned := requestedName
	for counter := 1; ; counter++ {
		if _, taken := p.connByName[assigned]; !taken {
			break
		}
		assigned = fmt.Sprintf("%s#%d", requestedName, counter)
	}
	p.nameByConn[connId] = assigned
	p.connByName[assigned] = connId
	return assigned
}

// Leave removes the binding and returns the name it held. Idempotent: a
// connection that never joined (or already left) yields ok=false with no
// other effect.
func (p *PresenceRegistry) Leave(connId string) (string, bool) {
	name, ok := p.nameByConn[connId]
	if !ok {
		return "", false
	}
	delete(p.nameByConn, connId)
	delete(p.connByName, name)
	return name, true
}

// NameOf returns the display name bound to the connection.
func (p *PresenceRegistry) NameOf(connId string) (string, bool) {
	name, ok := p.nameByConn[connId]
	return name, ok
}

// ConnectionsOf returns the connection(s) currently bound to the name.
// By construction at most one connection holds a name, so the result has
// zero or one entry.
func (p *PresenceRegistry) ConnectionsOf(name string) []string {
	if connId, ok := p.connByName[name]; ok {
		return []string{connId}
	}
	return nil
}

// AllNames returns every joined name sorted lexicographically, so the
// roster display is stable regardless of join order.
func (p *PresenceRegistry) AllNames() []string {
	names := make([]string, 0, len(p.connByName))
	for name := range p.connByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of live sessions.
func (p *PresenceRegistry) Count() int {
	return len(p.nameByConn)
}
