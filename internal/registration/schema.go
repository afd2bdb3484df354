package registration

import (
	"slices"
	"unicode/utf8"
)

// Kind is the value type a field accepts.
type Kind int

const (
	KindString Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindBool:
		return "Boolean"
	default:
		return "Unknown"
	}
}

func (k Kind) accepts(value any) bool {
	switch k {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindBool:
		_, ok := value.(bool)
		return ok
	}
	return false
}

// RuleKind identifies one check in a field's rule list.
type RuleKind int

const (
	RuleType RuleKind = iota
	RuleRequired
	RuleMin
	RuleMax
	RuleOneOf
	RuleTrue
)

func (r RuleKind) String() string {
	switch r {
	case RuleType:
		return "type"
	case RuleRequired:
		return "required"
	case RuleMin:
		return "min"
	case RuleMax:
		return "max"
	case RuleOneOf:
		return "oneOf"
	case RuleTrue:
		return "true"
	default:
		return "unknown"
	}
}

// Rule is a single declarative constraint with the message reported when it
// fails.
type Rule struct {
	Kind    RuleKind
	N       int      // bound for RuleMin/RuleMax, in runes
	Options []string // allowed values for RuleOneOf
	Message string
}

// Required rejects absent values and empty strings. A present bool always
// passes, so false falls through to MustBeTrue.
func Required(msg string) Rule { return Rule{Kind: RuleRequired, Message: msg} }

// Min rejects strings shorter than n runes.
func Min(n int, msg string) Rule { return Rule{Kind: RuleMin, N: n, Message: msg} }

// Max rejects strings longer than n runes.
func Max(n int, msg string) Rule { return Rule{Kind: RuleMax, N: n, Message: msg} }

// OneOf rejects strings outside options.
func OneOf(options []string, msg string) Rule {
	return Rule{Kind: RuleOneOf, Options: slices.Clone(options), Message: msg}
}

// MustBeTrue rejects a present false.
func MustBeTrue(msg string) Rule { return Rule{Kind: RuleTrue, Message: msg} }

// passes evaluates r against value. Absent values only fail RuleRequired.
func (r Rule) passes(value any) bool {
	if value == nil {
		return r.Kind != RuleRequired
	}
	switch r.Kind {
	case RuleRequired:
		if s, ok := value.(string); ok {
			return s != ""
		}
		return true
	case RuleMin:
		s, _ := value.(string)
		return utf8.RuneCountInString(s) >= r.N
	case RuleMax:
		s, _ := value.(string)
		return utf8.RuneCountInString(s) <= r.N
	case RuleOneOf:
		s, _ := value.(string)
		return slices.Contains(r.Options, s)
	case RuleTrue:
		b, _ := value.(bool)
		return b
	}
	return true
}

// FieldSchema is the ordered rule list for one field. Rules run in order and
// the first failure wins.
type FieldSchema struct {
	Field Field
	Kind  Kind
	Rules []Rule
}

// Check validates value against the field's rules.
func (fs FieldSchema) Check(value any) *FieldError {
	if value != nil && !fs.Kind.accepts(value) {
		return &FieldError{Field: fs.Field, Rule: RuleType, Message: typeMessage(fs.Field, fs.Kind)}
	}
	for _, r := range fs.Rules {
		if !r.passes(value) {
			return &FieldError{Field: fs.Field, Rule: r.Kind, Message: r.Message}
		}
	}
	return nil
}

func (fs FieldSchema) rule(kind RuleKind) (Rule, bool) {
	for _, r := range fs.Rules {
		if r.Kind == kind {
			return r, true
		}
	}
	return Rule{}, false
}

// FieldError is a failed single-field validation.
type FieldError struct {
	Field   Field
	Rule    RuleKind
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Schema is an ordered set of field schemas.
type Schema struct {
	fields []FieldSchema
}

// NewSchema builds a schema from field schemas in display order.
func NewSchema(fields ...FieldSchema) *Schema {
	return &Schema{fields: slices.Clone(fields)}
}

// DefaultSchema returns the registration form's rules.
func DefaultSchema() *Schema {
	return NewSchema(
		FieldSchema{
			Field: FieldUsername,
			Kind:  KindString,
			Rules: []Rule{
				Required(MsgUsernameRequired),
				Min(3, MsgUsernameMin),
				Max(20, MsgUsernameMax),
			},
		},
		FieldSchema{
			Field: FieldFavLanguage,
			Kind:  KindString,
			Rules: []Rule{
				Required(MsgFavLanguageRequired),
				OneOf(optionValues(Languages), MsgFavLanguageOptions),
			},
		},
		FieldSchema{
			Field: FieldFavFood,
			Kind:  KindString,
			Rules: []Rule{
				Required(MsgFavFoodRequired),
				OneOf(optionValues(Foods), MsgFavFoodOptions),
			},
		},
		FieldSchema{
			Field: FieldAgreement,
			Kind:  KindBool,
			Rules: []Rule{
				Required(MsgAgreementRequired),
				MustBeTrue(MsgAgreementOptions),
			},
		},
	)
}

// Fields returns the field schemas in order.
func (s *Schema) Fields() []FieldSchema {
	return slices.Clone(s.fields)
}

// Field looks up the schema for f.
func (s *Schema) Field(f Field) (FieldSchema, bool) {
	for _, fs := range s.fields {
		if fs.Field == f {
			return fs, true
		}
	}
	return FieldSchema{}, false
}

// ValidateField validates one candidate value against f's rules only,
// independent of every other field. Returns a *FieldError on failure.
func (s *Schema) ValidateField(f Field, value any) error {
	fs, ok := s.Field(f)
	if !ok {
		return &FieldError{Field: f, Rule: RuleType, Message: "unknown field " + string(f)}
	}
	if fe := fs.Check(value); fe != nil {
		return fe
	}
	return nil
}

// ValidateValues validates a loosely typed payload, such as one decoded from
// a file. Missing keys are validated as absent values.
func (s *Schema) ValidateValues(values map[string]any) ErrorMap {
	errs := make(ErrorMap, len(s.fields))
	for _, fs := range s.fields {
		errs[fs.Field] = messageOf(fs.Check(values[string(fs.Field)]))
	}
	return errs
}

func messageOf(fe *FieldError) string {
	if fe == nil {
		return ""
	}
	return fe.Message
}
