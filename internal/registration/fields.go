// Package registration holds the registration form's state, its declarative
// validation schema and the whole-form submit gate.
package registration

import (
	"fmt"
	"strings"
)

// Field names one input of the registration form. The value doubles as the
// JSON key sent to the registration endpoint.
type Field string

const (
	FieldUsername    Field = "username"
	FieldFavLanguage Field = "favLanguage"
	FieldFavFood     Field = "favFood"
	FieldAgreement   Field = "agreement"
)

// Fields lists every field in display order.
var Fields = []Field{FieldUsername, FieldFavLanguage, FieldFavFood, FieldAgreement}

// ParseField resolves a field by name.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// Option is one selectable value of an enumerated field.
type Option struct {
	Label string
	Value string
}

// Languages are the choices for FieldFavLanguage.
var Languages = []Option{
	{Label: "JavaScript", Value: "javascript"},
	{Label: "Rust", Value: "rust"},
}

// Foods are the choices for FieldFavFood.
var Foods = []Option{
	{Label: "Pizza", Value: "pizza"},
	{Label: "Spaghetti", Value: "spaghetti"},
	{Label: "Broccoli", Value: "broccoli"},
}

func optionValues(opts []Option) []string {
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

// Validation messages.
const (
	MsgUsernameRequired    = "username is required"
	MsgUsernameMin         = "username must be at least 3 characters"
	MsgUsernameMax         = "username cannot exceed 20 characters"
	MsgFavLanguageRequired = "favLanguage is required"
	MsgFavLanguageOptions  = "favLanguage must be either javascript or rust"
	MsgFavFoodRequired     = "favFood is required"
	MsgFavFoodOptions      = "favFood must be either broccoli, spaghetti or pizza"
	MsgAgreementRequired   = "agreement is required"
	MsgAgreementOptions    = "agreement must be accepted"
)

// Submission banners.
const (
	MsgSubmitSuccess = "Success! Welcome, new user!"
	MsgSubmitFailure = "Sorry! Username is taken."
)

func typeMessage(f Field, k Kind) string {
	return fmt.Sprintf("%s must be a %s", f, strings.ToLower(k.String()))
}
