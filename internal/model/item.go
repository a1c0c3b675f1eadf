package model

// CodingItem is one text excerpt awaiting a human label.
// Items are read-only for the lifetime of a session; identity is CodingID
// and the position in the loaded sequence is stable.
type CodingItem struct {
	CodingID    string `json:"coding_id"`             // Unique key within the item store
	Quotation   string `json:"quotation"`             // The excerpt being coded (required)
	Description string `json:"description,omitempty"` // Optional context shown alongside the quotation
	Explanation string `json:"explanation,omitempty"` // Optional model-generated rationale under review
}

// Variable identifies which economic outlook a session codes.
type Variable string

const (
	VariableInflation  Variable = "Inflation"
	VariableEmployment Variable = "Employment"
)

// Variables lists the supported coding variables in display order.
var Variables = []Variable{VariableInflation, VariableEmployment}

// Valid reports whether v is one of the supported variables.
func (v Variable) Valid() bool {
	for _, known := range Variables {
		if v == known {
			return true
		}
	}
	return false
}

// ParseVariable matches s against the supported variables.
func ParseVariable(s string) (Variable, bool) {
	v := Variable(s)
	if v.Valid() {
		return v, true
	}
	return "", false
}
