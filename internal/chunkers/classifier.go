// Package chunkers selects and runs the chunking strategy for a source file.
package chunkers

import (
	"path/filepath"
	"strings"

	"github.com/ocean48/oceanbot/internal/core/domain"
)

// keywordRule maps filename substrings to a strategy.
type keywordRule struct {
	keywords []string
	strategy domain.StrategyTag
}

// classifierRules are checked in order and the first match wins, so a file
// named "wine_menu.pdf" is a wine list, not a food menu.
var classifierRules = []keywordRule{
	{keywords: []string{"wine", "rsv", "std", "btg"}, strategy: domain.StrategyWineList},
	{keywords: []string{"menu", "food"}, strategy: domain.StrategyFoodMenu},
	{keywords: []string{"allerg", "lrg"}, strategy: domain.StrategyAllergenInfo},
	{keywords: []string{"spir"}, strategy: domain.StrategySpiritsList},
}

// Classify returns the chunking strategy for filename. Only the base name
// is inspected, case-insensitively.
func Classify(filename string) domain.StrategyTag {
	name := strings.ToLower(filepath.Base(filename))
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.strategy
			}
		}
	}
	return domain.StrategyGeneral
}
