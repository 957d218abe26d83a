package domain

// Category identifies the style of a bourbon in the catalog
type Category string

const (
	CategoryStraight      Category = "straight"
	CategorySmallBatch    Category = "small-batch"
	CategorySingleBarrel  Category = "single-barrel"
	CategoryBottledInBond Category = "bottled-in-bond"
	CategoryCaskStrength  Category = "cask-strength"
	CategoryWheated       Category = "wheated"
	CategoryHighRye       Category = "high-rye"
)

// Rarity describes how hard a bottle is to find at retail
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityLimited   Rarity = "limited"
	RarityAllocated Rarity = "allocated"
	RarityUnicorn   Rarity = "unicorn"
)

// Bourbon is a single read-only catalog entry
type Bourbon struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Distillery     string   `json:"distillery"`
	Proof          float64  `json:"proof"`
	ABV            float64  `json:"abv"`
	Age            string   `json:"age,omitempty"`
	MashBill       string   `json:"mashBill,omitempty"`
	Origin         string   `json:"origin"`
	Description    string   `json:"description"`
	Price          string   `json:"price,omitempty"`
	MSRP           string   `json:"msrp,omitempty"`           // reference price, free text e.g. "$25-35"
	SecondaryPrice string   `json:"secondaryPrice,omitempty"` // observed resale price, free text
	FlavorProfile  []string `json:"flavorProfile"`
	Color          string   `json:"color"`
	Category       Category `json:"category"`
	Rarity         Rarity   `json:"rarity,omitempty"`
}

// CatalogFilter narrows a catalog listing. Zero values match everything.
type CatalogFilter struct {
	Query        string
	Category     Category
	Distilleries []string
	Rarities     []Rarity
	Flavors      []string
}

// CategoryOption is a selectable category label
type CategoryOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
