package domain

import (
	"sort"
	"strings"
)

// VendorRegistry maps a vendor identifier to the domain substring used for
// attribution matching. Keys are lowercase; Lookup normalizes input before
// matching so the registry distinguishes "unsupported vendor" from "no data".
type VendorRegistry map[string]string

// DefaultVendors is the static registry of vendors the lookup command accepts.
var DefaultVendors = VendorRegistry{
	"amazon":     "amazon.",
	"ebay":       "ebay.",
	"walmart":    "walmart.",
	"bestbuy":    "bestbuy.",
	"target":     "target.",
	"etsy":       "etsy.",
	"aliexpress": "aliexpress.",
}

// Lookup resolves a vendor identifier to its attribution domain. Unrecognized
// vendors yield an UnsupportedVendorError naming the supported set.
func (r VendorRegistry) Lookup(vendor string) (string, error) {
	domain, ok := r[strings.ToLower(vendor)]
	if !ok {
		return "", &UnsupportedVendorError{Vendor: vendor, Supported: r.Supported()}
	}
	return domain, nil
}

// Supported returns the sorted vendor identifiers.
func (r VendorRegistry) Supported() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
