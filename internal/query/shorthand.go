package query

import "github.com/maraichr/iypquery/internal/traversal"

// Shorthand applies a named traversal. It is exactly WithRelationship with
// the shorthand's relationship, target kind and direction.
func (b *Builder) Shorthand(s traversal.Shorthand, opts StepOptions) error {
	return b.WithRelationship(Relationship{
		Kind:      string(s.Relationship),
		To:        string(s.Target),
		From:      opts.From,
		Alias:     opts.Alias,
		Direction: s.Direction,
		Hops:      opts.Hops,
	})
}

// Upstream follows DEPENDS_ON to the ASes the source depends on.
func (b *Builder) Upstream(opts StepOptions) error { return b.Shorthand(traversal.Upstream, opts) }

// Downstream follows DEPENDS_ON backwards to dependent ASes.
func (b *Builder) Downstream(opts StepOptions) error { return b.Shorthand(traversal.Downstream, opts) }

// Peers follows PEERS_WITH in either direction.
func (b *Builder) Peers(opts StepOptions) error { return b.Shorthand(traversal.Peers, opts) }

// Organization follows MANAGED_BY to the managing Organization.
func (b *Builder) Organization(opts StepOptions) error {
	return b.Shorthand(traversal.Organization, opts)
}

// Country follows COUNTRY to the Country node.
func (b *Builder) Country(opts StepOptions) error { return b.Shorthand(traversal.Country, opts) }

// Category follows CATEGORIZED to a Tag.
func (b *Builder) Category(opts StepOptions) error { return b.Shorthand(traversal.Category, opts) }

func (b *Builder) MemberOfIXP(opts StepOptions) error {
	return b.Shorthand(traversal.MemberOfIXP, opts)
}

func (b *Builder) OriginatedPrefixes(opts StepOptions) error {
	return b.Shorthand(traversal.Prefixes, opts)
}

func (b *Builder) Siblings(opts StepOptions) error { return b.Shorthand(traversal.Siblings, opts) }

func (b *Builder) ExternalIDs(opts StepOptions) error {
	return b.Shorthand(traversal.ExternalIDs, opts)
}
