package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
)

// UserEnv defines the variables available during filter expression evaluation.
type UserEnv struct {
	Name       string     `expr:"name"`
	Email      string     `expr:"email"`
	FieldNames []string   `expr:"fieldNames"`
	Fields     []FieldEnv `expr:"fields"`
	ID         int64      `expr:"id"`
	FieldCount int        `expr:"fieldCount"`
}

// FieldEnv exposes one profile field to filter expressions.
type FieldEnv struct {
	Value any    `expr:"value"`
	Type  string `expr:"type"`
	Name  string `expr:"name"`
	Valid bool   `expr:"valid"`
}

// NewUserEnv builds the evaluation environment for a user.
func NewUserEnv(u entities.User) UserEnv {
	fields := make([]FieldEnv, 0, len(u.ProfileFields))
	for i := range u.ProfileFields {
		f := u.ProfileFields[i]
		fields = append(fields, FieldEnv{
			Type:  string(f.FieldType),
			Name:  f.Name,
			Value: f.Value,
			Valid: IsValid(&f),
		})
	}
	return UserEnv{
		ID:         u.ID.Int64(),
		Name:       u.Name,
		Email:      u.Email,
		FieldCount: len(u.ProfileFields),
		FieldNames: u.FieldNames(),
		Fields:     fields,
	}
}

// UserFilter selects users with a compiled boolean expression, e.g.
//
//	fieldCount > 1 && "Age" in fieldNames
type UserFilter struct {
	program *vm.Program
	source  string
}

// CompileUserFilter compiles expression against UserEnv.
// Expressions that do not yield a boolean are rejected here, not at run time.
func CompileUserFilter(expression string) (*UserFilter, error) {
	program, err := expr.Compile(expression, expr.Env(UserEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}
	return &UserFilter{program: program, source: expression}, nil
}

// String returns the source expression.
func (f *UserFilter) String() string {
	return f.source
}

// Matches evaluates the filter against a single user.
func (f *UserFilter) Matches(u entities.User) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	output, err := expr.Run(f.program, NewUserEnv(u))
	if err != nil {
		return false, fmt.Errorf("filter expression error: %w", err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return boolean: %v", output)
	}
	return result, nil
}

// Apply returns the users that match, preserving order.
func (f *UserFilter) Apply(users []entities.User) ([]entities.User, error) {
	out := make([]entities.User, 0, len(users))
	for _, u := range users {
		ok, err := f.Matches(u)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", u.ID, err)
		}
		if ok {
			out = append(out, u)
		}
	}
	return out, nil
}
