package services

import (
	"chat-room/errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Names become part of Badger keys, which are capped at 65000 bytes.
const nameRules = "required,max=1024"

type RegisterRequest struct {
	Name string `validate:"required,max=1024"`
}

type PostMessageRequest struct {
	To   string `validate:"required"`
	Text string `validate:"required"`
	Type string `validate:"required,oneof=message private_message"`
}

type SearchRequest struct {
	Query string `validate:"required"`
}

// ParseLimit converts the raw limit query parameter.
// Only strictly positive integers are accepted.
func ParseLimit(raw string) (*int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("%w: got %q", errors.ErrInvalidLimit, raw)
	}
	return &limit, nil
}

// validateName checks a participant name received outside of a request body,
// such as the User header.
func validateName(name string) error {
	return validate.Var(name, nameRules)
}

func validateLimit(limit *int) error {
	if limit != nil && *limit <= 0 {
		return fmt.Errorf("%w: got %d", errors.ErrInvalidLimit, *limit)
	}
	return nil
}
