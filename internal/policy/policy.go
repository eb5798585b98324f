package policy

import "safechat/internal/classifier"

// AgeBand is a closed interval of ages in whole years.
type AgeBand struct {
	Min int
	Max int
}

// Contains reports whether age falls inside the band, boundaries included.
func (b AgeBand) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

// Policy decides whether a flagged message warrants alerting the receiver's
// parent, based on the message category and the receiver's age. The bands
// are fixed at construction so tests can substitute alternate tables.
type Policy struct {
	bands map[classifier.Category]AgeBand
}

// New creates a policy with the given category age bands. Categories absent
// from the map never notify.
func New(bands map[classifier.Category]AgeBand) *Policy {
	return &Policy{bands: bands}
}

// Default returns the standard notification policy: inappropriate language
// notifies for ages 6-9, sexual content for 6-13, drug-related for 6-17.
func Default() *Policy {
	return New(map[classifier.Category]AgeBand{
		classifier.CategoryInappropriateLanguage: {Min: 6, Max: 9},
		classifier.CategorySexualContent:         {Min: 6, Max: 13},
		classifier.CategoryDrugRelated:           {Min: 6, Max: 17},
	})
}

// ShouldNotify reports whether a parent alert is required. ageKnown is false
// when the receiver's age could not be resolved, which always suppresses the
// alert; the message itself is still filtered.
func (p *Policy) ShouldNotify(category classifier.Category, age int, ageKnown bool) bool {
	if !ageKnown {
		return false
	}

	band, ok := p.bands[category]
	if !ok {
		return false
	}

	return band.Contains(age)
}
