// Package validator provides small composable validation rules.
//
// Each rule pairs a check with the error reported when the check fails.
// Apply runs every rule and returns ValidationErrors listing all failures:
//
//	err := validator.Apply(
//	    validator.ValidEmail("email", in.Email),
//	    validator.MinLen("password", in.Password, 3),
//	)
//	if fields := validator.ExtractValidationErrors(err); fields != nil {
//	    // fields.Has("email"), fields.Get("password") ...
//	}
package validator
