package category

// Category describes one browsable category with bilingual labels.
type Category struct {
	Token  string `json:"token"`
	Enum   string `json:"enum"`
	NameAR string `json:"name_ar"`
	NameEN string `json:"name_en"`
}

// The UI tokens differ from the storage enum for a few legacy categories,
// so the two are kept as an explicit table rather than assumed equal.
var categories = []Category{
	{Token: "cars", Enum: "vehicles", NameAR: "سيارات", NameEN: "Cars"},
	{Token: "real_estate", Enum: "real_estate", NameAR: "عقارات", NameEN: "Real Estate"},
	{Token: "phones", Enum: "electronics", NameAR: "موبايلات", NameEN: "Phones"},
	{Token: "electronics", Enum: "electronics", NameAR: "إلكترونيات", NameEN: "Electronics"},
	{Token: "furniture", Enum: "home_goods", NameAR: "أثاث", NameEN: "Furniture"},
	{Token: "fashion", Enum: "fashion", NameAR: "أزياء", NameEN: "Fashion"},
	{Token: "jobs", Enum: "jobs", NameAR: "وظائف", NameEN: "Jobs"},
	{Token: "services", Enum: "services", NameAR: "خدمات", NameEN: "Services"},
	{Token: "animals", Enum: "pets", NameAR: "حيوانات", NameEN: "Animals"},
	{Token: "other", Enum: "other", NameAR: "أخرى", NameEN: "Other"},
}

var tokenToEnum map[string]string
var enumToToken map[string]string

func init() {
	tokenToEnum = make(map[string]string, len(categories))
	enumToToken = make(map[string]string, len(categories))
	for _, c := range categories {
		tokenToEnum[c.Token] = c.Enum
		if _, ok := enumToToken[c.Enum]; !ok {
			enumToToken[c.Enum] = c.Token
		}
	}
}

// Map translates a UI category token to its storage enum. Unknown tokens
// return (token, false) so callers can decide whether to reject or pass
// the value through.
func Map(token string) (string, bool) {
	if enum, ok := tokenToEnum[token]; ok {
		return enum, true
	}
	return token, false
}

// MustMap translates a UI token to its storage enum, passing unknown tokens
// through unchanged. This is the historical behavior the query builder
// depends on; prefer Map for anything user-facing.
func MustMap(token string) string {
	enum, _ := Map(token)
	return enum
}

// Reverse translates a storage enum back to the primary UI token.
func Reverse(enum string) (string, bool) {
	if token, ok := enumToToken[enum]; ok {
		return token, true
	}
	return enum, false
}

// All returns the category table for the /categories endpoint.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
