package catalog

import (
	"github.com/bloomhound/bloomhound/internal/types"
)

// link wires a newly appended record into its variant family. All links are
// bidirectional, in-place mutations of records shared between the product
// list and the lookup:
//
//  1. every already-known sibling of a different type gains a link to the
//     new record and vice versa;
//  2. the new record gains a self-reference entry once any differently
//     typed sibling exists, marking family membership;
//  3. the lookup tracks one live record per base-name/type pair, the newest
//     winning;
//  4. once a family holds more than one type, a "single" member whose
//     variant type was never materialized is backfilled to "single".
func (c *Catalog) link(rec *types.ProductRecord, variant types.VariantType, baseName string) {
	family, ok := c.variations[baseName]
	if !ok {
		family = make(map[types.VariantType]*types.ProductRecord)
		c.variations[baseName] = family
	}

	linked := 0
	for otherType, other := range family {
		if otherType == variant {
			continue
		}
		setLink(rec, otherType, other.ID)
		setLink(other, variant, rec.ID)
		linked++
		c.logger.Debug("variants linked",
			"product", rec.Name, "type", variant,
			"sibling", other.Name, "sibling_type", otherType)
	}

	if linked > 0 {
		setLink(rec, variant, rec.ID)
	}

	family[variant] = rec

	// Lazy "single" materialization: the default type only becomes
	// meaningful once a sibling exists to disambiguate from.
	if len(family) > 1 {
		if single, ok := family[types.VariantSingle]; ok && single.VariantType == nil {
			t := types.VariantSingle
			single.VariantType = &t
			c.logger.Debug("variant type backfilled to single", "product", single.Name)
		}
	}

	if linked > 0 {
		c.logger.Info("product linked into variant family",
			"product", rec.Name, "base_name", baseName, "siblings", linked)
	}
}

func setLink(rec *types.ProductRecord, t types.VariantType, id string) {
	if rec.VariationLinks == nil {
		rec.VariationLinks = make(map[types.VariantType]string)
	}
	rec.VariationLinks[t] = id
}
