package models

// Entity type slugs used by the natural-key resolver, the swallowed-error
// recorder and the translation queue.
const (
	EntityTypeCategory       = "category"
	EntityTypeFoodItem       = "food_item"
	EntityTypeMenu           = "menu"
	EntityTypeAddOnGroup     = "addon_group"
	EntityTypeAddOn          = "addon"
	EntityTypeVariationGroup = "variation_group"
	EntityTypeVariation      = "variation"
	EntityTypeBuffet         = "buffet"
	EntityTypeComboMeal      = "combo_meal"
)
