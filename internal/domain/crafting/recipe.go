package crafting

// Item is a product or ingredient line on a recipe: a named good and how many
// units of it the recipe produces or consumes per run.
type Item struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// LabourTime is a labour duration split into hours and minutes.
// Minutes are kept in [0,59]; arithmetic carries overflow into hours.
type LabourTime struct {
	Hours   int `json:"hours" validate:"gte=0"`
	Minutes int `json:"minutes" validate:"gte=0,lte=59"`
}

// TotalMinutes returns the duration as a flat minute count.
func (l LabourTime) TotalMinutes() int {
	return l.Hours*60 + l.Minutes
}

// LabourFromMinutes builds a normalized LabourTime from a flat minute count.
func LabourFromMinutes(minutes int) LabourTime {
	return LabourTime{
		Hours:   minutes / 60,
		Minutes: minutes % 60,
	}
}

// Add returns the sum of two labour durations, carrying minute overflow.
func (l LabourTime) Add(other LabourTime) LabourTime {
	return LabourFromMinutes(l.TotalMinutes() + other.TotalMinutes())
}

// Scale returns the duration repeated n times.
func (l LabourTime) Scale(n int) LabourTime {
	return LabourFromMinutes(l.TotalMinutes() * n)
}

// Cost is the price of one run of a recipe: labour time plus a gold fee.
type Cost struct {
	Labour LabourTime `json:"labour"`
	Gold   int        `json:"gold" validate:"gte=0"`
}

// Add returns the component-wise sum of two costs.
func (c Cost) Add(other Cost) Cost {
	return Cost{
		Labour: c.Labour.Add(other.Labour),
		Gold:   c.Gold + other.Gold,
	}
}

// Scale returns the cost of running the recipe n times.
func (c Cost) Scale(n int) Cost {
	return Cost{
		Labour: c.Labour.Scale(n),
		Gold:   c.Gold * n,
	}
}

// Recipe is a production rule: consume the ingredient quantities at one of the
// listed buildings, pay the cost, receive the product quantities.
// Recipes are immutable once loaded into a catalog.
type Recipe struct {
	ID          string   `json:"id" validate:"required"`
	Products    []Item   `json:"products" validate:"dive"`
	Ingredients []Item   `json:"ingredients" validate:"dive"`
	Buildings   []string `json:"buildings"`
	Cost        Cost     `json:"cost"`
}

// IsRaw reports whether the recipe has no ingredients, making it a terminal
// node in any dependency graph.
func (r *Recipe) IsRaw() bool {
	return len(r.Ingredients) == 0
}

// ProducesProduct reports whether the recipe outputs the named good.
func (r *Recipe) ProducesProduct(name string) bool {
	for _, p := range r.Products {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ProductQuantity returns how many units of the named good one run yields.
// Returns 1 when the good is not among the products; callers divide by this
// value, and malformed catalog data must not zero the divisor.
func (r *Recipe) ProductQuantity(name string) int {
	for _, p := range r.Products {
		if p.Name == name {
			return p.Quantity
		}
	}
	return 1
}
