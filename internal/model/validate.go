package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobmate/jobboard-service/internal/apperr"
)

var validate = validator.New()

// Validate checks the struct tags of v and folds every failing field into a
// single apperr Invalid error. what names the record in the message.
func Validate(what string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Invalid(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return apperr.Invalid("invalid " + what + ": " + strings.Join(msgs, ", "))
}
