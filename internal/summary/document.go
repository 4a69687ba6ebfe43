// Package summary defines the structured summary document produced by the
// model and the parser that recovers it from raw completion text.
package summary

// The five role labels and four point-group titles are part of the wire
// contract shared with the prompt templates. Changing either side alone
// breaks parse validation downstream.
const (
	RolePublicUser   = "🧑 Public User"
	RoleDeveloper    = "🧑‍💻 Developer"
	RoleNonDeveloper = "🏢 Non-Developer"
	RoleStudent      = "🎓 Student"
	RoleMinor        = "🧒 Minor"

	TitleDataCollected = "Data Collected"
	TitleTermsAgreed   = "Terms You Are Agreeing To"
	TitleDoes          = "Does"
	TitleDonts         = "Don'ts"

	// UnaddressedRole is the sentinel the model must emit when the source
	// text never talks about a given role.
	UnaddressedRole = "This kind of person is not really talked about in specific in the terms and conditions"
)

// Roles returns the fixed role labels in prompt order.
func Roles() []string {
	return []string{RolePublicUser, RoleDeveloper, RoleNonDeveloper, RoleStudent, RoleMinor}
}

// Titles returns the fixed point-group titles in prompt order.
func Titles() []string {
	return []string{TitleDataCollected, TitleTermsAgreed, TitleDoes, TitleDonts}
}

// PointGroup is one titled list of details under a role.
type PointGroup struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// UserType is the per-role breakdown of the terms.
type UserType struct {
	UserType string       `json:"userType"`
	Points   []PointGroup `json:"points"`
}

// Document is the parsed summarization result. Field names and nesting are
// the compatibility contract between the prompt instructions and the parser
// and must round-trip losslessly through encoding/json.
type Document struct {
	Summary          string     `json:"summary"`
	UserTypes        []UserType `json:"userTypes"`
	ImportantNotices []string   `json:"importantNotices"`
}

// KnownTitle reports whether title is one of the four fixed point-group
// titles.
func KnownTitle(title string) bool {
	switch title {
	case TitleDataCollected, TitleTermsAgreed, TitleDoes, TitleDonts:
		return true
	}
	return false
}
