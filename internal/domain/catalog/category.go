package catalog

// Category identifies an event category from the fixed marketplace set
type Category string

// The marketplace category set. New categories require a product decision,
// not just a new string, because preferences validate against this list.
const (
	CategoryRunning     Category = "running"
	CategoryHiking      Category = "hiking"
	CategoryDogParents  Category = "dog-parents"
	CategoryBoardGames  Category = "board-games"
	CategoryPhotography Category = "photography"
	CategoryCooking     Category = "cooking"
	CategoryYoga        Category = "yoga"
	CategoryMeditation  Category = "meditation"
	CategoryBookClubs   Category = "book-clubs"
	CategorySports      Category = "sports"
	CategoryOutdoor     Category = "outdoor"
	CategorySocial      Category = "social"
	CategoryFishing     Category = "fishing"
	CategoryFitness     Category = "fitness"
	CategoryGaming      Category = "gaming"
	CategoryArt         Category = "art"
)

// AllCategories returns the full category set in display order
func AllCategories() []Category {
	return []Category{
		CategoryRunning,
		CategoryHiking,
		CategoryDogParents,
		CategoryBoardGames,
		CategoryPhotography,
		CategoryCooking,
		CategoryYoga,
		CategoryMeditation,
		CategoryBookClubs,
		CategorySports,
		CategoryOutdoor,
		CategorySocial,
		CategoryFishing,
		CategoryFitness,
		CategoryGaming,
		CategoryArt,
	}
}

// IsValidCategory reports whether the value belongs to the category set
func IsValidCategory(value string) bool {
	for _, c := range AllCategories() {
		if string(c) == value {
			return true
		}
	}
	return false
}

// AgeRequirementOptions are the allowed minimum-age values for events and
// preferences. Zero means no age restriction.
func AgeRequirementOptions() []int {
	return []int{0, 13, 18, 21}
}

// IsValidAgeRequirement reports whether the value is an allowed age option
func IsValidAgeRequirement(age int) bool {
	for _, a := range AgeRequirementOptions() {
		if a == age {
			return true
		}
	}
	return false
}
