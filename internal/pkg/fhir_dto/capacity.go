package fhir_dto

import "fmt"

// Capacity is the caseload ceiling per client category carried by the
// practitioner capacity extension.
type Capacity struct {
	Children int `json:"children" validate:"gte=0"`
	Adults   int `json:"adults" validate:"gte=0"`
	Teens    int `json:"teens" validate:"gte=0"`
	Couples  int `json:"couples" validate:"gte=0"`
	Families int `json:"families" validate:"gte=0"`
}

func (c Capacity) categories() []capacityCategory {
	return []capacityCategory{
		{"children", c.Children},
		{"adults", c.Adults},
		{"teens", c.Teens},
		{"couples", c.Couples},
		{"families", c.Families},
	}
}

type capacityCategory struct {
	name  string
	value int
}

// ToExtension renders c as a complex extension with one integer sub-extension per category.
func (c Capacity) ToExtension(url string) Extension {
	categories := c.categories()
	ext := Extension{Url: url, Extension: make([]Extension, 0, len(categories))}
	for _, category := range categories {
		value := category.value
		ext.Extension = append(ext.Extension, Extension{Url: category.name, ValueInteger: &value})
	}
	return ext
}

// CapacityFromExtension reads the category sub-extensions back. Unknown or
// valueless sub-extensions are rejected so a malformed extension is not read as zeroes.
func CapacityFromExtension(ext Extension) (Capacity, error) {
	var capacity Capacity
	for _, sub := range ext.Extension {
		if sub.ValueInteger == nil {
			return Capacity{}, fmt.Errorf("capacity category %q has no valueInteger", sub.Url)
		}
		value := *sub.ValueInteger
		switch sub.Url {
		case "children":
			capacity.Children = value
		case "adults":
			capacity.Adults = value
		case "teens":
			capacity.Teens = value
		case "couples":
			capacity.Couples = value
		case "families":
			capacity.Families = value
		default:
			return Capacity{}, fmt.Errorf("unknown capacity category %q", sub.Url)
		}
	}
	return capacity, nil
}
