// File: services/filter.go
package services

import (
	"strings"

	"wanderlust/models"
)

// FilterDestinations returns the destinations whose name or location contains searchTerm
// (case-insensitive) and that list amenity exactly. Empty arguments do not filter.
// It never modifies items.
func FilterDestinations(items []models.Destination, searchTerm, amenity string) []models.Destination {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]models.Destination, 0, len(items))
	for _, d := range items {
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Name), term) &&
			!strings.Contains(strings.ToLower(d.Location), term) {
			continue
		}
		if amenity != "" && !d.HasAmenity(amenity) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Amenities lists every distinct amenity in first-seen order, for the facet dropdown.
func Amenities(items []models.Destination) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range items {
		for _, a := range d.Amenities {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}
