// Package domain contains the core model for geojson-clipping.
//
// The domain is transport- and persistence-agnostic: it does not parse GeoJSON, touch the
// filesystem, or inspect the terminal. Adapters under infra map into/from these types.
package domain
