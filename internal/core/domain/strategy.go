package domain

const unknownDescription = "Unknown"

// StrategyTag selects the chunking algorithm applied to a source file.
type StrategyTag string

// Available chunking strategies.
const (
	// StrategyWineList splits wine lists into one chunk per wine.
	StrategyWineList StrategyTag = "wine_list"

	// StrategyFoodMenu splits menus into one chunk per category.
	StrategyFoodMenu StrategyTag = "food_menu"

	// StrategyAllergenInfo splits allergen references into one chunk per item.
	StrategyAllergenInfo StrategyTag = "allergen_info"

	// StrategySpiritsList splits spirits lists into one chunk per bottle.
	StrategySpiritsList StrategyTag = "spirits_list"

	// StrategyGeneral uses fixed-size overlapping windows.
	StrategyGeneral StrategyTag = "general"
)

// IsValid returns true if the strategy tag is recognised.
func (s StrategyTag) IsValid() bool {
	switch s {
	case StrategyWineList, StrategyFoodMenu, StrategyAllergenInfo, StrategySpiritsList, StrategyGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s StrategyTag) String() string {
	return string(s)
}

// ChunkType returns the chunk type emitted by this strategy.
func (s StrategyTag) ChunkType() ChunkType {
	switch s {
	case StrategyWineList:
		return ChunkTypeWineEntry
	case StrategyFoodMenu:
		return ChunkTypeMenuItem
	case StrategyAllergenInfo:
		return ChunkTypeAllergenEntry
	case StrategySpiritsList:
		return ChunkTypeSpiritEntry
	default:
		return ChunkTypeGeneral
	}
}

// Description returns a human-readable description of the strategy.
func (s StrategyTag) Description() string {
	switch s {
	case StrategyWineList:
		return "Wine lists: one chunk per wine (name, vintage, region, price and tasting notes kept together)"
	case StrategyFoodMenu:
		return "Food menus: one chunk per menu category, prefixed with the category name"
	case StrategyAllergenInfo:
		return "Allergen references: one chunk per item and its allergen codes"
	case StrategySpiritsList:
		return "Spirits lists: one chunk per bottle (brand, type, price or proof)"
	case StrategyGeneral:
		return "General documents: 1000 character windows with 200 character overlap"
	default:
		return unknownDescription
	}
}

// AllStrategies returns every strategy in classifier priority order.
func AllStrategies() []StrategyTag {
	return []StrategyTag{
		StrategyWineList,
		StrategyFoodMenu,
		StrategyAllergenInfo,
		StrategySpiritsList,
		StrategyGeneral,
	}
}

// ChunkType tags the kind of unit a chunk represents.
type ChunkType string

// Chunk types stamped into MetaChunkType.
const (
	ChunkTypeWineEntry     ChunkType = "wine_entry"
	ChunkTypeMenuItem      ChunkType = "menu_item"
	ChunkTypeAllergenEntry ChunkType = "allergen_entry"
	ChunkTypeSpiritEntry   ChunkType = "spirit_entry"
	ChunkTypeGeneral       ChunkType = "general"

	// ChunkTypeTextSplit marks windows produced when a plain-text upload
	// arrives as a single oversized document.
	ChunkTypeTextSplit ChunkType = "text_split"
)

// String returns the string representation.
func (c ChunkType) String() string {
	return string(c)
}
