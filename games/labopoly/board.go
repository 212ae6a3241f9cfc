/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package labopoly

// TileKind discriminates the tile variants on the board.
type TileKind string

const (
	KindGo       TileKind = "go"
	KindProperty TileKind = "property"
	KindUtility  TileKind = "utility"
	KindChance   TileKind = "chance"
	KindJail     TileKind = "jail"
	KindAuction  TileKind = "auction"
)

// Action is the default player action triggered by landing on a tile.
type Action string

const (
	ActionBuyProperty Action = "buy property"
	ActionBuyUtility  Action = "buy utility"
	ActionChance      Action = "chance"
	ActionJail        Action = "jail"
	ActionAuction     Action = "auction"
	ActionNothing     Action = "nothing"
)

// BoardSize is the number of tiles on the board.
const BoardSize = 32

// UpgradeNames are the display names of the property upgrade levels.
var UpgradeNames = [...]string{"lab bench", "lab room", "research facility"}

// Tile is one board position. Collection, BaseValue, Upgrade and OwnerID
// only carry meaning for properties and utilities.
type Tile struct {
	Name       string   `json:"name"`
	Kind       TileKind `json:"type"`
	Action     Action   `json:"action"`
	Collection int      `json:"collection"`
	BaseValue  int      `json:"baseValue,omitempty"`
	Upgrade    int      `json:"upgrade"`
	OwnerID    string   `json:"ownerId,omitempty"`
}

func (t Tile) ownable() bool {
	return t.Kind == KindProperty || t.Kind == KindUtility
}

func (t Tile) owned() bool {
	return t.OwnerID != ""
}

func goTile() Tile {
	return Tile{Name: "GO", Kind: KindGo, Action: ActionNothing}
}

func property(name string, collection int) Tile {
	return Tile{
		Name:       name,
		Kind:       KindProperty,
		Action:     ActionBuyProperty,
		Collection: collection,
		BaseValue:  BaseValue(collection),
	}
}

func utility(name string, collection int) Tile {
	return Tile{Name: name, Kind: KindUtility, Action: ActionBuyUtility, Collection: collection}
}

func chanceTile() Tile {
	return Tile{Name: "CAS", Kind: KindChance, Action: ActionChance}
}

func jailTile() Tile {
	return Tile{Name: "EE", Kind: KindJail, Action: ActionJail}
}

func auctionTile() Tile {
	return Tile{Name: "TOK", Kind: KindAuction, Action: ActionAuction}
}

// NewBoard returns a fresh, unowned copy of the game board.
func NewBoard() []Tile {
	return []Tile{
		goTile(),
		property("Alkane Avenue", 0),
		property("Benzene Boulevard", 0),
		property("Carboxylic Crescent", 0),
		utility("Lab Safety", 0),
		property("Thermoset Trail", 1),
		property("Plastic Pines", 1),
		property("Monomer Meadow", 1),
		chanceTile(),
		property("Cis Crossing", 2),
		property("E/Z Exit", 2),
		property("Trans Tunnel", 2),
		utility("Lab Equipment", 1),
		property("Chiral Center", 3),
		property("Polarimeter Parkway", 3),
		property("Enantiomer Express", 3),
		jailTile(),
		property("Reaction Ranch", 4),
		property("Racemic Route", 4),
		property("Radical Road", 4),
		utility("IA Rules", 2),
		property("Nucleophilic North", 5),
		property("Electrophilic East", 5),
		property("Substitution South", 5),
		auctionTile(),
		property("Chain Lane", 6),
		property("Name Lane", 6),
		property("Line Lane", 6),
		utility("Mr. Israel's Rules", 3),
		property("Pathway Palace", 7),
		property("Compound Castle", 7),
		property("Molecule Manor", 7),
	}
}

// collectionCounts returns the number of collections of each ownable kind.
func collectionCounts(board []Tile) (properties, utilities int) {
	for _, t := range board {
		switch t.Kind {
		case KindProperty:
			properties = max(properties, t.Collection+1)
		case KindUtility:
			utilities = max(utilities, t.Collection+1)
		}
	}

	return properties, utilities
}
