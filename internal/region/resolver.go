package region

import (
	"strings"

	"amalkitchen-be/internal/cart"
)

// branchByRegion maps a region tag to the kitchen that fulfills it. Branch
// is about which kitchen prepares the order; the customer's declared
// delivery region is a separate free-choice field stored verbatim on the
// order and never derived from this table.
var branchByRegion = map[string]string{
	"durban":   "Durban",
	"joburg":   "Joburg",
	"capetown": "Cape Town",
}

// Resolution is the outcome of mapping a cart onto a fulfillment branch.
type Resolution struct {
	Branch string
	Region string
	Mixed  bool
}

// Resolve inspects the region tag on every cart line. More than one
// distinct tag means the cart cannot be checked out as a single order and
// Branch stays unset. An empty cart falls back to the shopper's last
// browsed region.
func Resolve(items []cart.Item, fallbackRegion string) Resolution {
	distinct := make(map[string]struct{})
	for _, item := range items {
		tag := strings.ToLower(strings.TrimSpace(item.Region))
		if tag == "" {
			continue
		}
		distinct[tag] = struct{}{}
	}

	if len(distinct) > 1 {
		return Resolution{Mixed: true}
	}

	tag := ""
	for t := range distinct {
		tag = t
	}
	if tag == "" {
		tag = strings.ToLower(strings.TrimSpace(fallbackRegion))
	}
	if tag == "" {
		return Resolution{}
	}

	return Resolution{
		Branch: branchByRegion[tag],
		Region: tag,
	}
}

// BranchFor returns the branch label for a single region tag.
func BranchFor(tag string) string {
	return branchByRegion[strings.ToLower(strings.TrimSpace(tag))]
}

// KnownBranches lists every fulfillment branch.
func KnownBranches() []string {
	return []string{"Durban", "Joburg", "Cape Town"}
}
