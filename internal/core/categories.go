package core

// Category is static reference data used to classify transactions and to
// decorate them in presentation. It is not user-editable.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
}

// CurrencySymbol is the display symbol for all amounts. There is no
// currency conversion; every amount is assumed to be in this currency.
const CurrencySymbol = "$"

// DefaultCategories is the fixed taxonomy. Transactions are expected, but
// not required, to use one of these names for their type.
var DefaultCategories = []Category{
	// Income categories
	{ID: "1", Name: "Salary", Type: Income, Color: "#10B981", Icon: "💰"},
	{ID: "2", Name: "Freelance", Type: Income, Color: "#059669", Icon: "💻"},
	{ID: "3", Name: "Investment", Type: Income, Color: "#047857", Icon: "📈"},
	{ID: "4", Name: "Other Income", Type: Income, Color: "#065F46", Icon: "💵"},

	// Expense categories
	{ID: "5", Name: "Food & Dining", Type: Expense, Color: "#EF4444", Icon: "🍔"},
	{ID: "6", Name: "Transportation", Type: Expense, Color: "#F97316", Icon: "🚗"},
	{ID: "7", Name: "Shopping", Type: Expense, Color: "#8B5CF6", Icon: "🛍️"},
	{ID: "8", Name: "Entertainment", Type: Expense, Color: "#EC4899", Icon: "🎬"},
	{ID: "9", Name: "Bills & Utilities", Type: Expense, Color: "#F59E0B", Icon: "⚡"},
	{ID: "10", Name: "Healthcare", Type: Expense, Color: "#06B6D4", Icon: "🏥"},
	{ID: "11", Name: "Education", Type: Expense, Color: "#3B82F6", Icon: "📚"},
	{ID: "12", Name: "Other Expense", Type: Expense, Color: "#6B7280", Icon: "💸"},
}

// CategoriesForType returns the categories available for the given
// transaction type, in declaration order.
func CategoriesForType(t TransactionType) []Category {
	var out []Category
	for _, c := range DefaultCategories {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// CategoryByName looks up a category by its unique name.
func CategoryByName(name string) (Category, bool) {
	for _, c := range DefaultCategories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
