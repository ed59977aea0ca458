// Package categories holds the fixed expense category taxonomy and the
// vendor keyword hints shared by the extraction prompt and the local
// fallback categorizer. Both tables are immutable configuration loaded at
// process start; nothing may mutate them.
package categories

import "strings"

// All is the fixed category set, in display order.
var All = []string{
	"Car",
	"Cellular & Wifi",
	"Dining",
	"Entertainment",
	"Fitness & Sports",
	"Fuel",
	"Gifts & Donation",
	"Groceries",
	"Health & Wellness",
	"Household",
	"Housing",
	"Learning & Development",
	"Miscellaneous",
	"Parents",
	"Parking (Public)",
	"Self Care",
	"Shopping",
	"Subscriptions",
	"Transportation",
	"Travel",
	"Utilities",
}

// Fallback is used when neither the extraction service nor the keyword
// table can place a transaction.
const Fallback = "Miscellaneous"

// Keywords maps each category to lowercase vendor substrings that suggest
// it. The table is sent to the extraction service as a hint and consulted
// locally when a returned category is not in the taxonomy.
var Keywords = map[string][]string{
	"Car":                    {"car wash", "car repair", "auto repair", "mechanic", "tire", "oil change", "honda", "toyota", "ford", "dealership"},
	"Fuel":                   {"esso", "shell", "petro-canada", "gas station", "fuel", "gasoline", "petroleum"},
	"Parking (Public)":       {"parking", "green p", "impark", "indigo", "parkway"},
	"Transportation":         {"uber", "lyft", "ttc", "transit", "presto", "go train", "via rail", "taxi", "cab"},
	"Cellular & Wifi":        {"rogers", "bell", "telus", "fido", "koodo", "freedom mobile", "virgin mobile", "chatr", "internet", "wifi"},
	"Gifts & Donation":       {"gift", "birthday", "wedding", "charity", "donation", "present", "flowers"},
	"Subscriptions":          {"netflix", "spotify", "amazon prime", "disney", "apple", "subscription", "membership", "youtube", "hulu"},
	"Health & Wellness":      {"pharmacy", "doctor", "dentist", "shoppers drug mart", "rexall", "medical", "clinic", "hospital", "prescription"},
	"Parents":                {"senior", "eldercare", "parent", "mom", "dad", "family support"},
	"Learning & Development": {"course", "class", "udemy", "coursera", "book", "education", "tuition", "school", "training"},
	"Fitness & Sports":       {"gym", "fitness", "yoga", "pilates", "goodlife", "equinox", "sports", "workout", "athletic"},
	"Travel":                 {"flight", "hotel", "airbnb", "vacation", "expedia", "booking", "airline", "resort", "travel"},
	"Groceries":              {"loblaws", "sobeys", "metro", "no frills", "walmart", "costco", "freshco", "supermarket", "grocery", "food basics"},
	"Household":              {"cleaning", "toiletries", "home depot", "ikea", "canadian tire", "rona", "home hardware"},
	"Housing":                {"rent", "mortgage", "condo fee", "property tax", "home insurance"},
	"Utilities":              {"hydro", "electricity", "water", "enbridge", "gas bill", "utility"},
	"Dining":                 {"restaurant", "cafe", "coffee", "starbucks", "tim hortons", "mcdonald", "fast food", "takeout", "uber eats", "doordash"},
	"Entertainment":          {"movies", "cinema", "concert", "theatre", "bar", "pub", "nightclub", "event", "ticket"},
	"Self Care":              {"salon", "spa", "hair", "nails", "beauty", "skincare", "massage", "wellness"},
	"Shopping":               {"amazon", "ebay", "walmart", "target", "best buy", "clothing", "shoes", "mall", "retail", "store", "shop", "fashion", "outlet"},
	"Miscellaneous":          {"other", "misc", "unknown"},
}

var valid = func() map[string]bool {
	m := make(map[string]bool, len(All))
	for _, c := range All {
		m[c] = true
	}
	return m
}()

// Valid reports whether name is one of the enumerated categories.
func Valid(name string) bool {
	return valid[name]
}

// Categorize picks a category for a vendor name by keyword match, falling
// back to Miscellaneous. Iterates All so the result is deterministic.
func Categorize(vendor string) string {
	v := strings.ToLower(vendor)
	for _, cat := range All {
		for _, kw := range Keywords[cat] {
			if strings.Contains(v, kw) {
				return cat
			}
		}
	}
	return Fallback
}
