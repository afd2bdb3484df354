package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/signup/internal/cachemanager"
)

// DefaultCacheTTL is how long a single-field verdict is memoized.
const DefaultCacheTTL = 5 * time.Minute

type verdictKey string

// verdict is the cached outcome of one single-field validation.
type verdict struct {
	Failed  bool
	Rule    RuleKind
	Message string
}

type fieldInput struct {
	field Field
	value any
}

// Validator runs single-field validation through a read-through cache.
// Validation is pure, so the same field and value always yield the same
// result whether or not it was cached.
type Validator struct {
	schema *Schema
	cache  *cachemanager.ReadThroughCache[verdictKey, verdict, fieldInput]
	ttl    time.Duration
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*validatorOptions)

type validatorOptions struct {
	ttl       time.Duration
	skipCache bool
}

// WithCacheTTL sets the memoization ttl.
func WithCacheTTL(ttl time.Duration) ValidatorOption {
	return func(o *validatorOptions) { o.ttl = ttl }
}

// WithoutCache disables memoization.
func WithoutCache() ValidatorOption {
	return func(o *validatorOptions) { o.skipCache = true }
}

// NewValidator wraps schema with a memoizing single-field validator.
func NewValidator(schema *Schema, opts ...ValidatorOption) *Validator {
	o := validatorOptions{ttl: DefaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		o.ttl = DefaultCacheTTL
	}

	var manager cachemanager.CacheManager[verdictKey, verdict]
	if !o.skipCache {
		manager = cachemanager.NewInMemoryCacheManager[verdictKey, verdict](
			"field-validation", o.ttl, cachemanager.DefaultCleanupInterval)
	}

	return &Validator{
		schema: schema,
		ttl:    o.ttl,
		cache: cachemanager.NewReadThroughCache(
			manager,
			func(_ context.Context, in fieldInput) (verdict, error) {
				fs, ok := schema.Field(in.field)
				if !ok {
					return verdict{}, fmt.Errorf("unknown field %q", in.field)
				}
				if fe := fs.Check(in.value); fe != nil {
					return verdict{Failed: true, Rule: fe.Rule, Message: fe.Message}, nil
				}
				return verdict{}, nil
			},
		),
	}
}

// Schema returns the underlying schema.
func (v *Validator) Schema() *Schema {
	return v.schema
}

// CacheStats reports how many verdicts were served from the cache.
func (v *Validator) CacheStats() cachemanager.Stats {
	return v.cache.Stats()
}

// ValidateField validates value against f's rules. Returns a *FieldError on
// failure.
func (v *Validator) ValidateField(ctx context.Context, f Field, value any) error {
	key := verdictKey(fmt.Sprintf("%s=%T:%v", f, value, value))
	res, err := v.cache.Get(ctx, key, fieldInput{field: f, value: value}, v.ttl)
	if err != nil {
		return err
	}
	if !res.Failed {
		return nil
	}
	return &FieldError{Field: f, Rule: res.Rule, Message: res.Message}
}
