package ingestion

import "strings"

// Field is a canonical column the normalizers know how to read.
type Field string

const (
	FieldEmail     Field = "email"
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldPhone     Field = "phone"
	FieldZip       Field = "zip"
	FieldCreatedAt Field = "created_at"
	FieldCost      Field = "cost"
	FieldPolicy    Field = "policy_number"
	FieldPremium   Field = "premium"
	FieldItems     Field = "items"
	FieldAgent     Field = "assigned_agent"
	FieldCustomer  Field = "customer"
	FieldMilestone Field = "milestone"
	FieldFolder    Field = "folder"
)

// ColumnRule maps header keywords to a canonical field. A header containing
// any Exclude term is never claimed by a substring match.
type ColumnRule struct {
	Field    Field
	Patterns []string
	Exclude  []string
}

// LeadColumnRules are evaluated in order against vendor lead headers.
var LeadColumnRules = []ColumnRule{
	{Field: FieldEmail, Patterns: []string{"email"}},
	{Field: FieldFirstName, Patterns: []string{"first"}},
	{Field: FieldLastName, Patterns: []string{"last"}},
	{Field: FieldPhone, Patterns: []string{"phone"}},
	{Field: FieldZip, Patterns: []string{"zip"}},
	{Field: FieldCreatedAt, Patterns: []string{"created", "date"}},
	{Field: FieldCost, Patterns: []string{"cost", "spend", "amount", "amt"}},
}

// SalesColumnRules are evaluated in order against sales ledger headers.
var SalesColumnRules = []ColumnRule{
	{Field: FieldEmail, Patterns: []string{"email"}},
	{
		Field:    FieldPolicy,
		Patterns: []string{"policy #", "policy number", "policy no", "policy_number", "policy num", "policy"},
		Exclude:  []string{"type", "status", "date", "term", "premium"},
	},
	{Field: FieldPremium, Patterns: []string{"premium"}},
	{Field: FieldItems, Patterns: []string{"items", "item"}},
	{Field: FieldAgent, Patterns: []string{"assign", "agent"}},
	{Field: FieldCustomer, Patterns: []string{"customer"}},
	{Field: FieldFirstName, Patterns: []string{"first name", "first_name", "firstname", "first"}},
	{Field: FieldLastName, Patterns: []string{"last name", "last_name", "lastname", "last"}},
}

// DispositionColumnRules are evaluated in order against disposition headers.
var DispositionColumnRules = []ColumnRule{
	{Field: FieldPhone, Patterns: []string{"phone"}},
	{Field: FieldMilestone, Patterns: []string{"milestone", "disposition", "status"}},
	{Field: FieldFolder, Patterns: []string{"folder"}},
	{Field: FieldFirstName, Patterns: []string{"first"}},
	{Field: FieldLastName, Patterns: []string{"last"}},
}

// ColumnMap records the header index chosen for each field.
type ColumnMap map[Field]int

// Index returns the column for f, or -1 when the file has none.
func (m ColumnMap) Index(f Field) int {
	if idx, ok := m[f]; ok {
		return idx
	}
	return -1
}

// Has reports whether f was found.
func (m ColumnMap) Has(f Field) bool {
	_, ok := m[f]
	return ok
}

// ResolveColumns assigns headers to fields. Rules run in order and each claims
// one header: a header equal to a pattern (ignoring case) wins over one that
// merely contains it, ties go to the leftmost header, and a claimed header is
// never reused.
func ResolveColumns(headers []string, rules []ColumnRule) ColumnMap {
	lowered := make([]string, len(headers))
	for i, header := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(header))
	}

	claimed := make(map[int]bool, len(headers))
	columns := make(ColumnMap, len(rules))
	for _, rule := range rules {
		if columns.Has(rule.Field) {
			continue
		}
		if idx := findColumn(lowered, claimed, rule); idx >= 0 {
			columns[rule.Field] = idx
			claimed[idx] = true
		}
	}
	return columns
}

func findColumn(headers []string, claimed map[int]bool, rule ColumnRule) int {
	for _, pattern := range rule.Patterns {
		for idx, header := range headers {
			if !claimed[idx] && header == pattern {
				return idx
			}
		}
	}
	for _, pattern := range rule.Patterns {
		for idx, header := range headers {
			if !claimed[idx] && header != "" && strings.Contains(header, pattern) && !excluded(header, rule.Exclude) {
				return idx
			}
		}
	}
	return -1
}

func excluded(header string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(header, term) {
			return true
		}
	}
	return false
}
