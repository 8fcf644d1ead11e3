// Package schema holds the Internet Yellow Pages node and relationship
// vocabulary. All tables are constant after init and safe for concurrent use.
package schema

import (
	"slices"

	"github.com/maraichr/iypquery/pkg/qerr"
)

// NodeKind is a node label in the IYP graph.
type NodeKind string

const (
	AS                      NodeKind = "AS"
	AtlasMeasurement        NodeKind = "AtlasMeasurement"
	AtlasProbe              NodeKind = "AtlasProbe"
	AuthoritativeNameServer NodeKind = "AuthoritativeNameServer"
	BGPCollector            NodeKind = "BGPCollector"
	BGPPrefix               NodeKind = "BGPPrefix"
	CaidaIXID               NodeKind = "CaidaIXID"
	CaidaOrgID              NodeKind = "CaidaOrgID"
	Country                 NodeKind = "Country"
	DomainName              NodeKind = "DomainName"
	Estimate                NodeKind = "Estimate"
	Facility                NodeKind = "Facility"
	GeoPrefix               NodeKind = "GeoPrefix"
	HostName                NodeKind = "HostName"
	IP                      NodeKind = "IP"
	IXP                     NodeKind = "IXP"
	Name                    NodeKind = "Name"
	OpaqueID                NodeKind = "OpaqueID"
	Organization            NodeKind = "Organization"
	PeeringdbFacID          NodeKind = "PeeringdbFacID"
	PeeringdbIXID           NodeKind = "PeeringdbIXID"
	PeeringdbNetID          NodeKind = "PeeringdbNetID"
	PeeringdbOrgID          NodeKind = "PeeringdbOrgID"
	PeeringLAN              NodeKind = "PeeringLAN"
	Point                   NodeKind = "Point"
	Prefix                  NodeKind = "Prefix"
	Ranking                 NodeKind = "Ranking"
	Resolver                NodeKind = "Resolver"
	RDNSPrefix              NodeKind = "RDNSPrefix"
	RIRPrefix               NodeKind = "RIRPrefix"
	RPKIPrefix              NodeKind = "RPKIPrefix"
	Tag                     NodeKind = "Tag"
	URL                     NodeKind = "URL"
)

// RelationshipKind is a relationship type in the IYP graph.
type RelationshipKind string

const (
	AliasOf                  RelationshipKind = "ALIAS_OF"
	Assigned                 RelationshipKind = "ASSIGNED"
	Available                RelationshipKind = "AVAILABLE"
	Categorized              RelationshipKind = "CATEGORIZED"
	Censored                 RelationshipKind = "CENSORED"
	CountryRel               RelationshipKind = "COUNTRY"
	DependsOn                RelationshipKind = "DEPENDS_ON"
	ExternalID               RelationshipKind = "EXTERNAL_ID"
	LocatedIn                RelationshipKind = "LOCATED_IN"
	ManagedBy                RelationshipKind = "MANAGED_BY"
	MemberOf                 RelationshipKind = "MEMBER_OF"
	NameRel                  RelationshipKind = "NAME"
	Originate                RelationshipKind = "ORIGINATE"
	Parent                   RelationshipKind = "PARENT"
	PartOf                   RelationshipKind = "PART_OF"
	PeersWith                RelationshipKind = "PEERS_WITH"
	Population               RelationshipKind = "POPULATION"
	QueriedFrom              RelationshipKind = "QUERIED_FROM"
	Rank                     RelationshipKind = "RANK"
	Reserved                 RelationshipKind = "RESERVED"
	ResolvesTo               RelationshipKind = "RESOLVES_TO"
	RouteOriginAuthorization RelationshipKind = "ROUTE_ORIGIN_AUTHORIZATION"
	SiblingOf                RelationshipKind = "SIBLING_OF"
	Target                   RelationshipKind = "TARGET"
	Website                  RelationshipKind = "WEBSITE"
)

var nodeKinds = []NodeKind{
	AS, AtlasMeasurement, AtlasProbe, AuthoritativeNameServer, BGPCollector, BGPPrefix,
	CaidaIXID, CaidaOrgID, Country, DomainName, Estimate, Facility, GeoPrefix, HostName,
	IP, IXP, Name, OpaqueID, Organization, PeeringdbFacID, PeeringdbIXID, PeeringdbNetID,
	PeeringdbOrgID, PeeringLAN, Point, Prefix, Ranking, Resolver, RDNSPrefix, RIRPrefix,
	RPKIPrefix, Tag, URL,
}

var relationshipKinds = []RelationshipKind{
	AliasOf, Assigned, Available, Categorized, Censored, CountryRel, DependsOn, ExternalID,
	LocatedIn, ManagedBy, MemberOf, NameRel, Originate, Parent, PartOf, PeersWith, Population,
	QueriedFrom, Rank, Reserved, ResolvesTo, RouteOriginAuthorization, SiblingOf, Target, Website,
}

// nodeProperties lists the queryable properties per kind. Kinds missing from
// the table (Estimate, Resolver) are unrestricted.
var nodeProperties = map[NodeKind][]string{
	AS:                      {"asn", "name"},
	AtlasMeasurement:        {"id"},
	AtlasProbe:              {"id"},
	AuthoritativeNameServer: {"name"},
	BGPCollector:            {"name"},
	BGPPrefix:               {"prefix", "af"},
	CaidaIXID:               {"id"},
	CaidaOrgID:              {"id"},
	Country:                 {"country_code", "alpha3", "name"},
	DomainName:              {"name"},
	Facility:                {"name"},
	GeoPrefix:               {"prefix", "af"},
	HostName:                {"name"},
	IP:                      {"ip", "af"},
	IXP:                     {"name"},
	Name:                    {"name"},
	OpaqueID:                {"id"},
	Organization:            {"name"},
	PeeringdbFacID:          {"id"},
	PeeringdbIXID:           {"id"},
	PeeringdbNetID:          {"id"},
	PeeringdbOrgID:          {"id"},
	PeeringLAN:              {"prefix", "af"},
	Point:                   {"position"},
	Prefix:                  {"prefix", "af"},
	Ranking:                 {"name"},
	RDNSPrefix:              {"prefix", "af"},
	RIRPrefix:               {"prefix", "af"},
	RPKIPrefix:              {"prefix", "af"},
	Tag:                     {"label"},
	URL:                     {"url"},
}

var prefixSubtypes = []NodeKind{BGPPrefix, GeoPrefix, PeeringLAN, RDNSPrefix, RIRPrefix, RPKIPrefix}

var (
	nodeKindSet = make(map[string]NodeKind, len(nodeKinds))
	relKindSet  = make(map[string]RelationshipKind, len(relationshipKinds))
)

func init() {
	for _, k := range nodeKinds {
		nodeKindSet[string(k)] = k
	}
	for _, k := range relationshipKinds {
		relKindSet[string(k)] = k
	}
}

// ParseNodeKind returns the NodeKind named by name. Names are case-sensitive.
func ParseNodeKind(name string) (NodeKind, error) {
	k, ok := nodeKindSet[name]
	if !ok {
		return "", qerr.UnknownNodeKind(name)
	}
	return k, nil
}

// ParseRelationshipKind returns the RelationshipKind named by name.
func ParseRelationshipKind(name string) (RelationshipKind, error) {
	k, ok := relKindSet[name]
	if !ok {
		return "", qerr.UnknownRelationshipKind(name)
	}
	return k, nil
}

// AllowedProperties returns the properties that may be referenced on kind, in
// declaration order. An empty result means the kind is unrestricted.
func AllowedProperties(kind NodeKind) []string {
	return slices.Clone(nodeProperties[kind])
}

// HasProperty reports whether prop may be referenced on kind.
func HasProperty(kind NodeKind, prop string) bool {
	props := nodeProperties[kind]
	return len(props) == 0 || slices.Contains(props, prop)
}

// NodeKinds returns every known node kind.
func NodeKinds() []NodeKind { return slices.Clone(nodeKinds) }

// RelationshipKinds returns every known relationship kind.
func RelationshipKinds() []RelationshipKind { return slices.Clone(relationshipKinds) }

// IsPrefixKind reports whether kind is one of the specialised Prefix labels.
func IsPrefixKind(kind NodeKind) bool {
	return slices.Contains(prefixSubtypes, kind)
}
