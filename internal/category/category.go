// Package category holds the closed category taxonomy shared by the
// extraction prompt, the persisted records, and every UI lookup. The
// three must stay in sync: adding a key here is the single place a new
// category is introduced.
package category

import "strings"

// Fallback is the catch-all bucket for anything the taxonomy does not
// recognize. Unknown categories are never rejected.
const Fallback = "lainnya"

// Info describes one category for display purposes.
type Info struct {
	Label string
	Color string
	Icon  string
}

// expense holds the expense keys in display order.
var expense = []string{
	"fnb",
	"transport",
	"belanja",
	"hiburan",
	"tagihan",
	"kesehatan",
	"pendidikan",
	"liburan",
	"pulsa",
	"hadiah",
	"rumah",
}

// income holds the income keys in display order.
var income = []string{
	"gaji",
	"investasi",
	"bonus",
}

var table = map[string]Info{
	"fnb":        {Label: "Makanan & Minuman", Color: "#ef4444", Icon: "utensils"},
	"transport":  {Label: "Transportasi", Color: "#eab308", Icon: "car"},
	"belanja":    {Label: "Belanja", Color: "#22c55e", Icon: "shopping-bag"},
	"hiburan":    {Label: "Hiburan", Color: "#06b6d4", Icon: "gamepad"},
	"tagihan":    {Label: "Tagihan & Utilitas", Color: "#14b8a6", Icon: "receipt"},
	"kesehatan":  {Label: "Kesehatan", Color: "#ec4899", Icon: "heart"},
	"pendidikan": {Label: "Pendidikan", Color: "#8b5cf6", Icon: "graduation-cap"},
	"liburan":    {Label: "Liburan & Wisata", Color: "#3b82f6", Icon: "plane"},
	"pulsa":      {Label: "Pulsa & Data", Color: "#6366f1", Icon: "smartphone"},
	"hadiah":     {Label: "Hadiah & Donasi", Color: "#f43f5e", Icon: "gift"},
	"rumah":      {Label: "Keperluan Rumah", Color: "#84cc16", Icon: "home"},
	"gaji":       {Label: "Gaji", Color: "#10b981", Icon: "banknote"},
	"investasi":  {Label: "Investasi", Color: "#a855f7", Icon: "trending-up"},
	"bonus":      {Label: "Bonus", Color: "#fbbf24", Icon: "gift"},
	Fallback:     {Label: "Lainnya", Color: "#6b7280", Icon: "credit-card"},
}

// Known reports whether raw (case-insensitively) names a taxonomy key.
func Known(raw string) bool {
	_, ok := table[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// Normalize maps an arbitrary category string to a canonical key. It
// is total: the empty string and unrecognized values map to Fallback.
// Callers apply it once at the data-entry boundary so everything
// downstream only ever sees canonical keys.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := table[key]; ok {
		return key
	}
	return Fallback
}

// Label returns the display label for a category. Unknown values are
// title-cased rather than rejected, so legacy rows still render.
func Label(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return table[Fallback].Label
	}
	if info, ok := table[key]; ok {
		return info.Label
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}

// Color returns the chart color token for a category.
func Color(raw string) string {
	return table[Normalize(raw)].Color
}

// Icon returns the icon token for a category.
func Icon(raw string) string {
	return table[Normalize(raw)].Icon
}

// ExpenseKeys returns the expense categories in display order.
func ExpenseKeys() []string {
	out := make([]string, len(expense))
	copy(out, expense)
	return out
}

// IncomeKeys returns the income categories in display order.
func IncomeKeys() []string {
	out := make([]string, len(income))
	copy(out, income)
	return out
}

// Keys returns every selectable category: expenses, incomes, then the
// fallback bucket.
func Keys() []string {
	out := make([]string, 0, len(expense)+len(income)+1)
	out = append(out, expense...)
	out = append(out, income...)
	out = append(out, Fallback)
	return out
}
