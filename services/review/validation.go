package review

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"tourhub/models"
	"tourhub/utils"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their json names so messages match the
// request bodies clients send.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// validateStruct runs the struct tags and converts the first failure into
// a Validation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return utils.Validation(fe.Field() + " " + msgForTag(fe))
	}
	return utils.Validation(err.Error())
}

func (in *SubmitReviewInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.ReviewText = strings.TrimSpace(in.ReviewText)
	in.Pros = compact(in.Pros)
	in.Cons = compact(in.Cons)
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (in *SubmitReviewInput) validate() error {
	return validateStruct(in)
}

func validateModerationStatus(status models.ReviewStatus) error {
	if !status.IsModerationTarget() {
		return utils.Validation("status must be one of approved, rejected, flagged")
	}
	return nil
}

func validateResponse(text string) error {
	return validateStruct(struct {
		ResponseText string `json:"response_text" validate:"required,max=1000"`
	}{text})
}
