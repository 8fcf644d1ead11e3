package traversal

import "github.com/maraichr/iypquery/internal/schema"

// Shorthand is a named, fixed traversal. Applying one is exactly a Step with
// these fields filled in.
type Shorthand struct {
	Name         string
	Relationship schema.RelationshipKind
	Target       schema.NodeKind
	Direction    Direction
}

// Step returns the traversal step for this shorthand.
func (s Shorthand) Step(alias string, hops int) Step {
	return Step{
		Relationship: s.Relationship,
		Direction:    s.Direction,
		Target:       s.Target,
		Alias:        alias,
		Hops:         hops,
	}
}

var (
	Upstream     = Shorthand{"upstream", schema.DependsOn, schema.AS, Out}
	Downstream   = Shorthand{"downstream", schema.DependsOn, schema.AS, In}
	Peers        = Shorthand{"peers", schema.PeersWith, schema.AS, Both}
	Organization = Shorthand{"organization", schema.ManagedBy, schema.Organization, Out}
	Country      = Shorthand{"country", schema.CountryRel, schema.Country, Out}
	Category     = Shorthand{"category", schema.Categorized, schema.Tag, Out}
	MemberOfIXP  = Shorthand{"ixp", schema.MemberOf, schema.IXP, Out}
	Prefixes     = Shorthand{"prefixes", schema.Originate, schema.Prefix, In}
	Siblings     = Shorthand{"siblings", schema.SiblingOf, "", Both}
	ExternalIDs  = Shorthand{"external_ids", schema.ExternalID, "", Out}
)
