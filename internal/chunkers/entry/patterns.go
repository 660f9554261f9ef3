package entry

import (
	"regexp"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// Minimum entry lengths in characters.
const (
	WineMinLength     = 50
	AllergenMinLength = 20
	SpiritsMinLength  = 30
)

// Building blocks for boundary patterns. A name phrase starts with a capital
// letter and is matched lazily so the trailing vintage, price or proof can
// be recognised.
const (
	namePhrase = `\p{Lu}[\p{L}\p{N}'’.&,()/-]*(?:[ \t]+[\p{L}\p{N}'’.&,()/-]+)*?`
	vintage    = `(?:19|20)\d{2}`
	price      = `\$[ \t]?\d[\d,]*(?:\.\d{2})?`
	proof      = `\d{2,3}(?:\.\d+)?[ \t]?%`
	spiritType = `(?i:whisky|whiskey|bourbon|scotch|rye|vodka|gin|rum|tequila|mezcal|cognac|brandy|armagnac|calvados|liqueur|amaro|vermouth|grappa|pisco|sake)`
	codeToken  = `\p{Lu}{1,12}`
)

var (
	winePatterns = []*regexp.Regexp{
		// Name Vintage Region $Price
		regexp.MustCompile(`^` + namePhrase + `[ \t]+` + vintage + `[ \t]+\p{Lu}[^$\n]*?[ \t]+` + price),
		// Name Vintage $Price
		regexp.MustCompile(`^` + namePhrase + `[ \t]+` + vintage + `[ \t]+` + price),
		// Name $Price
		regexp.MustCompile(`^` + namePhrase + `[ \t]+` + price + `[ \t]*$`),
		// Name Vintage
		regexp.MustCompile(`^` + namePhrase + `[ \t]+` + vintage + `[ \t]*$`),
	}

	allergenPatterns = []*regexp.Regexp{
		// Name: allergens
		regexp.MustCompile(`^\p{Lu}[\p{L}\p{N}'’.&()/ -]{0,80}?:[ \t]*\S`),
		// Name CODE, CODE
		regexp.MustCompile(`^\p{Lu}\p{Ll}[^:\n]*?[ \t]+` + codeToken + `(?:[ \t]*[,/][ \t]*` + codeToken + `|[ \t]+` + codeToken + `)*[ \t]*$`),
	}

	spiritsPatterns = []*regexp.Regexp{
		// Brand Type $Price
		regexp.MustCompile(`^` + namePhrase + `[ \t]+` + spiritType + `\b[^$\n]*?` + price),
		// Brand $Price
		regexp.MustCompile(`^` + namePhrase + `[ \t]+` + price),
		// Brand Proof%
		regexp.MustCompile(`^` + namePhrase + `[ \t]+` + proof),
	}
)

// Wine returns the wine_list splitter.
func Wine(opts ...Option) *Splitter {
	return New(domain.StrategyWineList, winePatterns, WineMinLength, opts...)
}

// Allergen returns the allergen_info splitter.
func Allergen(opts ...Option) *Splitter {
	return New(domain.StrategyAllergenInfo, allergenPatterns, AllergenMinLength, opts...)
}

// Spirits returns the spirits_list splitter.
func Spirits(opts ...Option) *Splitter {
	return New(domain.StrategySpiritsList, spiritsPatterns, SpiritsMinLength, opts...)
}
