package model

// OtherCategory is the escape-hatch option appended to every category list.
// Selecting it requires an accompanying free-text description.
const OtherCategory = "Other / No Good Match"

// ArgumentCategory is one macroeconomic category a quotation can be
// assigned to. Categories are scoped by variable; names are unique within
// a variable.
type ArgumentCategory struct {
	Variable    Variable `json:"variable" yaml:"variable"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
}

// DataCategory classifies the kind of data a speaker cites. Data
// categories are variable-independent.
type DataCategory struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// InformationType classifies how accessible cited information is.
type InformationType string

const (
	InformationPublic  InformationType = "Public Information"
	InformationPrivate InformationType = "Private/Specialized Information"
)

// InformationTypes lists the supported information types in display order.
var InformationTypes = []InformationType{InformationPublic, InformationPrivate}

// Valid reports whether t is a supported information type.
func (t InformationType) Valid() bool {
	return t == InformationPublic || t == InformationPrivate
}
