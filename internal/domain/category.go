// internal/domain/category.go
package domain

// Conventional transaction categories. Category is free-form; these are the
// values the entry forms offer.
const (
	CategoryFood          = "Makanan"
	CategoryTransport     = "Transportasi"
	CategoryShopping      = "Belanja"
	CategoryEntertainment = "Hiburan"
	CategoryHealth        = "Kesehatan"
	CategoryEducation     = "Pendidikan"
	CategoryBills         = "Tagihan"
	CategorySalary        = "Gaji"
	CategoryInvestment    = "Investasi"
	CategoryOther         = "Lainnya"
)

// Categories lists the conventional categories in display order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategoryBills,
	CategorySalary,
	CategoryInvestment,
	CategoryOther,
}

// IsKnownCategory reports whether c is one of Categories.
func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
