package document

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// DependencySections are the package.json sections consulted when deciding
// whether a package is already installed. Both count equally.
var DependencySections = []string{"dependencies", "devDependencies"}

// DeclaredDependencies returns every package named in any dependency section,
// mapped to its declared version range. A null section counts as absent.
func DeclaredDependencies(doc *Document) (map[string]string, error) {
	declared := make(map[string]string)
	for _, section := range DependencySections {
		deps := doc.Get(Key(section))
		if !deps.Exists() || deps.Type == gjson.Null {
			continue
		}
		if !deps.IsObject() {
			return nil, fmt.Errorf("%s: %w", section, ErrNotObject)
		}
		for name, version := range deps.Map() {
			if _, seen := declared[name]; !seen {
				declared[name] = version.String()
			}
		}
	}
	return declared, nil
}

// MissingDependencies returns the entries of required that no dependency
// section declares, in the order given.
func MissingDependencies(doc *Document, required []string) ([]string, error) {
	declared, err := DeclaredDependencies(doc)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, name := range required {
		if _, ok := declared[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
