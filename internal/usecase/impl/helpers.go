// Package impl contains the implementation of the application's business logic.
package impl

import (
	"encoding/json"
	"fmt"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tags and maps failures onto ErrValidationFailed.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
}

// requireSession rejects calls that need a bearer credential before any request is sent.
func requireSession(session *entity.Session) error {
	if !session.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}

	return nil
}

// decodeCollection accepts a bare JSON array or an object wrapping it under one of keys or "data".
func decodeCollection[T any](body []byte, keys ...string) ([]T, error) {
	root := gjson.ParseBytes(body)

	raw := ""
	switch {
	case root.IsArray():
		raw = root.Raw
	case root.IsObject():
		for _, key := range append(keys, "data") {
			if v := root.Get(key); v.IsArray() {
				raw = v.Raw

				break
			}
		}
	}
	if raw == "" {
		return nil, errors.Errorf("unexpected collection response: %.80s", string(body))
	}

	items := []T{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errors.Wrap(err, "failed to decode collection")
	}

	return items, nil
}

// decodeEntity accepts a JSON object, optionally wrapped under one of keys or "data".
func decodeEntity[T any](body []byte, keys ...string) (*T, error) {
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.Errorf("unexpected entity response: %.80s", string(body))
	}

	raw := root.Raw
	for _, key := range append(keys, "data") {
		if v := root.Get(key); v.IsObject() {
			raw = v.Raw

			break
		}
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.Wrap(err, "failed to decode entity")
	}

	return &out, nil
}

// hasEntity reports whether body carries an object to decode.
func hasEntity(body []byte) bool {
	return gjson.ParseBytes(body).IsObject()
}
