package rbac

// MaxInheritanceDepth is the maximum allowed depth of role inheritance.
const MaxInheritanceDepth = 10

// Role is a set of scopes with optional inheritance.
type Role struct {
	// Scopes directly granted to this role.
	Scopes []string

	// Inherits lists role names whose scopes are included in this role.
	Inherits []string
}

// Option configures a Table.
type Option func(*tableOptions)

type tableOptions struct {
	vocabulary []string
}

// WithVocabulary restricts role scopes to the given closed set.
func WithVocabulary(vocabulary []string) Option {
	return func(o *tableOptions) {
		o.vocabulary = vocabulary
	}
}
