package queries

import (
	"github.com/burningsea/craftcalc/internal/application/common"
	"github.com/burningsea/craftcalc/internal/application/crafting/services"
	"github.com/burningsea/craftcalc/internal/domain/crafting"
)

// RegisterHandlers wires every query handler for the given catalog into the
// mediator. The composition root calls this once per loaded catalog; all
// dispatch then goes through Mediator.Send.
func RegisterHandlers(m common.Mediator, catalog *crafting.Catalog, cache *services.ResolutionCache) error {
	if err := common.RegisterHandler[*ResolveProductionQuery](m, NewResolveProductionHandler(catalog, cache)); err != nil {
		return err
	}
	if err := common.RegisterHandler[*GetRecipeQuery](m, NewGetRecipeHandler(catalog)); err != nil {
		return err
	}
	return common.RegisterHandler[*ListRecipesQuery](m, NewListRecipesHandler(catalog))
}
