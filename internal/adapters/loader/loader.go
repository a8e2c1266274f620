package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// recipeFile is the on-disk recipe shape. The dataset has two historical
// shapes for outputs: early files carry a single "product" object, later
// ones a "products" list. Both normalize to a products list here so nothing
// downstream branches on shape.
type recipeFile struct {
	Product     *itemJSON  `json:"product"`
	Products    []itemJSON `json:"products"`
	Ingredients []itemJSON `json:"ingredients"`
	Buildings   []string   `json:"buildings"`
	Cost        costJSON   `json:"cost"`
}

type itemJSON struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type costJSON struct {
	Labour labourJSON `json:"labour"`
	Gold   int        `json:"gold"`
}

type labourJSON struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// CatalogLoader reads a directory of recipe JSON files into a catalog.
type CatalogLoader struct {
	dir string
}

// NewCatalogLoader creates a loader for the given recipe directory.
func NewCatalogLoader(dir string) *CatalogLoader {
	return &CatalogLoader{dir: dir}
}

// Load reads every *.json file in the directory (index.json excluded) in
// sorted filename order, which becomes the catalog's insertion order and so
// fixes producer tie-breaks across runs.
//
// Files that fail to parse or validate are logged and skipped; one bad file
// must not take down the rest of the catalog. Load fails only when the
// directory itself is unreadable or yields zero valid recipes.
func (l *CatalogLoader) Load() (*crafting.Catalog, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe directory %s: %w", l.dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == "index.json" {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	hash := sha256.New()
	var recipes []*crafting.Recipe
	skipped := 0

	for _, name := range files {
		path := filepath.Join(l.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("loader: skipping %s: %v", name, err)
			skipped++
			continue
		}

		recipe, err := parseRecipe(strings.TrimSuffix(name, ".json"), data)
		if err != nil {
			log.Printf("loader: skipping %s: %v", name, err)
			skipped++
			continue
		}

		hash.Write(data)
		recipes = append(recipes, recipe)
	}

	if len(recipes) == 0 {
		return nil, fmt.Errorf("no valid recipes in %s (%d files skipped)", l.dir, skipped)
	}
	if skipped > 0 {
		log.Printf("loader: loaded %d recipes, skipped %d invalid files", len(recipes), skipped)
	}

	catalog := crafting.NewCatalog(hex.EncodeToString(hash.Sum(nil))[:16])
	for _, recipe := range recipes {
		if err := catalog.Add(recipe); err != nil {
			log.Printf("loader: %v", err)
		}
	}
	return catalog, nil
}

// parseRecipe decodes and validates one recipe file. The recipe ID is the
// file's base name, matching how the dataset names its files after the
// cleaned recipe name.
func parseRecipe(id string, data []byte) (*crafting.Recipe, error) {
	var rf recipeFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	recipe := &crafting.Recipe{
		ID:        id,
		Buildings: rf.Buildings,
		Cost: crafting.Cost{
			Labour: crafting.LabourTime{
				Hours:   rf.Cost.Labour.Hours,
				Minutes: rf.Cost.Labour.Minutes,
			},
			Gold: rf.Cost.Gold,
		},
	}

	// Single-product shape takes effect only when the list shape is absent.
	if len(rf.Products) > 0 {
		recipe.Products = toItems(rf.Products)
	} else if rf.Product != nil {
		recipe.Products = []crafting.Item{{Name: rf.Product.Name, Quantity: rf.Product.Quantity}}
	}
	recipe.Ingredients = toItems(rf.Ingredients)

	if err := ValidateRecipe(recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func toItems(in []itemJSON) []crafting.Item {
	if len(in) == 0 {
		return nil
	}
	out := make([]crafting.Item, len(in))
	for i, item := range in {
		out[i] = crafting.Item{Name: item.Name, Quantity: item.Quantity}
	}
	return out
}
