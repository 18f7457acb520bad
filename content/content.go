// Package content holds the fixed marketing copy rendered by the public pages.
// File: content/content.go
package content

import (
	"encoding/json"
	"fmt"
	"os"

	"wanderlust/logger"
)

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTA      string `json:"cta"`
}

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Value struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ContactCard struct {
	Icon  string   `json:"icon"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Content is everything the home, about and contact pages show besides destinations.
type Content struct {
	Hero         Hero          `json:"hero"`
	Features     []Feature     `json:"features"`
	Values       []Value       `json:"values"`
	Stats        []Stat        `json:"stats"`
	ContactCards []ContactCard `json:"contactCards"`
}

// Default returns the built-in copy.
func Default() Content {
	return Content{
		Hero: Hero{
			Title:    "Discover Your Next Adventure",
			Subtitle: "Handpicked destinations, honest reviews and stays you will remember.",
			CTA:      "Explore Destinations",
		},
		Features: []Feature{
			{Icon: "globe", Title: "Curated Destinations", Description: "Every place on our list is visited and vetted by our team."},
			{Icon: "shield", Title: "Secure Booking", Description: "Your details and payments are handled safely from start to finish."},
			{Icon: "headset", Title: "24/7 Support", Description: "Real people ready to help before, during and after your trip."},
		},
		Values: []Value{
			{Title: "Authenticity", Description: "We favour local experiences over tourist traps."},
			{Title: "Sustainability", Description: "We partner with hosts who care for their communities and environment."},
			{Title: "Transparency", Description: "Clear prices and genuine reviews, no surprises."},
		},
		Stats: []Stat{
			{Value: "150+", Label: "Destinations"},
			{Value: "50K+", Label: "Happy Travellers"},
			{Value: "4.8", Label: "Average Rating"},
			{Value: "10+", Label: "Years of Experience"},
		},
		ContactCards: []ContactCard{
			{Icon: "map-pin", Title: "Visit Us", Lines: []string{"123 Travel Street", "Adventure City, AC 12345"}},
			{Icon: "phone", Title: "Call Us", Lines: []string{"+1 (555) 123-4567", "Mon-Fri, 9am-6pm"}},
			{Icon: "mail", Title: "Email Us", Lines: []string{"hello@wanderlust.example", "support@wanderlust.example"}},
		},
	}
}

// Load returns Default with every section present in the JSON file at path replacing the
// built-in one. An empty path returns Default unchanged.
func Load(path string) (Content, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator supplied path
	if err != nil {
		return c, fmt.Errorf("read content file: %w", err)
	}

	var override Content
	if err := json.Unmarshal(data, &override); err != nil {
		return c, fmt.Errorf("parse content file %s: %w", path, err)
	}

	if override.Hero != (Hero{}) {
		c.Hero = override.Hero
	}
	if override.Features != nil {
		c.Features = override.Features
	}
	if override.Values != nil {
		c.Values = override.Values
	}
	if override.Stats != nil {
		c.Stats = override.Stats
	}
	if override.ContactCards != nil {
		c.ContactCards = override.ContactCards
	}
	logger.Info.Printf("Loaded page content from %s", path)
	return c, nil
}
