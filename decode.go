package soundpad

import (
	"encoding/xml"
	"fmt"
)

// decodeSoundList parses a <Soundlist> reply. A self-closing or empty root
// decodes to an empty, non-nil slice; a lone <Sound> child and a full list
// land in the same slice, in document order.
func decodeSoundList(text string) ([]Sound, error) {
	var doc struct {
		Sounds []Sound `xml:"Sound"`
	}
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("decode sound list: %w", err)
	}
	if doc.Sounds == nil {
		return []Sound{}, nil
	}
	return doc.Sounds, nil
}

// decodeCategories parses a <Categories> reply into the category forest.
func decodeCategories(text string) ([]Category, error) {
	var doc struct {
		Categories []Category `xml:"Category"`
	}
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	cats := doc.Categories
	if cats == nil {
		cats = []Category{}
	}
	for i := range cats {
		normalizeCategory(&cats[i])
	}
	return cats, nil
}

// decodeCategory parses a single <Category> reply, children included.
func decodeCategory(text string) (Category, error) {
	var cat Category
	if err := xml.Unmarshal([]byte(text), &cat); err != nil {
		return Category{}, fmt.Errorf("decode category: %w", err)
	}
	normalizeCategory(&cat)
	return cat, nil
}

// normalizeCategory makes Subcategories non-nil on every node of the tree.
// Sounds stays nil when the listing was fetched without sounds.
func normalizeCategory(c *Category) {
	if c.Subcategories == nil {
		c.Subcategories = []Category{}
	}
	for i := range c.Subcategories {
		normalizeCategory(&c.Subcategories[i])
	}
}
