package server

import (
	"errors"
	"fmt"

	valid "github.com/go-playground/validator/v10"

	"github.com/gradekit/hwcheck/internal/names"
)

// checkRequest carries the form fields of an archive upload. The archive
// file itself is handled separately.
type checkRequest struct {
	Assignment string `validate:"required,assignment_name"`
	StudentID  string `validate:"omitempty,min=1,max=64"`
}

type reportsQuery struct {
	Assignment string `validate:"omitempty,assignment_name"`
	Limit      int    `validate:"gte=0,lte=1000"`
	Offset     int    `validate:"gte=0"`
}

func newRequestValidator() (*valid.Validate, error) {
	v := valid.New()
	err := v.RegisterValidation("assignment_name", func(fl valid.FieldLevel) bool {
		return names.ValidateAssignmentName(fl.Field().String()) == nil
	})
	if err != nil {
		return nil, fmt.Errorf("register assignment_name validation: %w", err)
	}
	return v, nil
}

func validationDetails(err error) []string {
	var fieldErrs valid.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
	}
	return details
}
