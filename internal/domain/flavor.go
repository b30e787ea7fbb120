package domain

// FlavorDistinctionRule lists names that must never be accepted for its key.
// Rules are not symmetric: a pair is blocked both ways only when both keys
// carry a rule naming each other.
type FlavorDistinctionRule struct {
	Forbidden []string `json:"forbidden"`
	Aliases   []string `json:"aliases"` // informational only
}

// SpellingVariation maps known variant spellings onto one canonical term
type SpellingVariation struct {
	Canonical string   `json:"canonical"`
	Variants  []string `json:"variants"`
}

// DefaultFlavorDistinctions are the store-training critical confusions, keyed by lowercased name
var DefaultFlavorDistinctions = map[string]FlavorDistinctionRule{
	"blueberry": {
		Forbidden: []string{"blue raspberry", "blueberries"},
		Aliases:   []string{"blue berry"},
	},
	"blue raspberry": {
		Forbidden: []string{"blueberry", "blueberries"},
		Aliases:   []string{"blue razz", "blue rasp"},
	},
	"strawberry": {
		Forbidden: []string{"strawberry jam"},
		Aliases:   []string{"straw berry"},
	},
	"strawberry jam": {
		Forbidden: []string{"strawberry"},
		Aliases:   []string{"strawb jam", "strawberry preserve"},
	},
}

// DefaultSpellingVariations is applied in declaration order
var DefaultSpellingVariations = []SpellingVariation{
	{Canonical: "raspberry", Variants: []string{"rasberry", "rapsberry", "razberry"}},
	{Canonical: "orange", Variants: []string{"orang", "orrange"}},
	{Canonical: "pineapple", Variants: []string{"pineapple", "pine apple"}},
	{Canonical: "watermelon", Variants: []string{"water melon", "watermellon"}},
	{Canonical: "blueberry", Variants: []string{"blue berry", "blueberrie"}},
	{Canonical: "strawberry", Variants: []string{"straw berry", "strawberrie"}},
	{Canonical: "blackberry", Variants: []string{"black berry", "blackberrie"}},
	{Canonical: "cranberry", Variants: []string{"cran berry", "cranberrie"}},
	{Canonical: "lemonade", Variants: []string{"lemon ade", "lemonde"}},
	{Canonical: "limeade", Variants: []string{"lime ade", "limade"}},
	{Canonical: "tamarind", Variants: []string{"tamarin", "tamarindo"}},
	{Canonical: "hibiscus", Variants: []string{"hibiscus", "hibiscus"}},
	{Canonical: "guava", Variants: []string{"guava", "guwa"}},
	{Canonical: "mango", Variants: []string{"mango", "mangoes"}},
	{Canonical: "coconut", Variants: []string{"cocnut", "coco nut"}},
	{Canonical: "kiwi", Variants: []string{"kiwi", "kiwifruit"}},
	{Canonical: "peach", Variants: []string{"peach", "peachy"}},
	{Canonical: "apricot", Variants: []string{"apricot", "apricots"}},
	{Canonical: "cherry", Variants: []string{"cherry", "cherries"}},
	{Canonical: "custard", Variants: []string{"custerd", "custurd"}},
	{Canonical: "caramel", Variants: []string{"carmel", "caramell"}},
	{Canonical: "toffee", Variants: []string{"tofee", "toffy"}},
	{Canonical: "vanilla", Variants: []string{"vanila", "vanille"}},
	{Canonical: "cinnamon", Variants: []string{"cinamon", "cinniman"}},
	{Canonical: "menthol", Variants: []string{"menthel", "menthol"}},
	{Canonical: "peppermint", Variants: []string{"peper mint", "pepermint"}},
	{Canonical: "spearmint", Variants: []string{"spear mint", "spearmint"}},
}
