package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrFieldRequired marks a required form field that is absent or blank.
	ErrFieldRequired = errors.New("field is required")

	// ErrInvalidInteger marks a form value that is not a positive integer.
	ErrInvalidInteger = errors.New("value is not a positive integer")
)

// FormError describes why a submitted form was rejected.
type FormError struct {
	Field string
	Value string
	Err   error
}

func (e *FormError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid form body: %v", e.Err)
	}
	if e.Value == "" {
		return fmt.Sprintf("form field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("form field %q value %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormError) Unwrap() error { return e.Err }

// maxFormMemory bounds the multipart parts kept in memory.
const maxFormMemory = 1 << 20

// parseBody accepts both urlencoded and multipart bodies; either way the
// submitted values end up in r.PostForm.
func parseBody(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return &FormError{Err: err}
	}
	return nil
}

type addFoodForm struct {
	Name string
}

type deleteFoodsForm struct {
	IDs []int64
}

func parseAddFoodForm(r *http.Request) (addFoodForm, error) {
	if err := parseBody(r); err != nil {
		return addFoodForm{}, err
	}

	name := strings.TrimSpace(r.PostForm.Get("food_name"))
	if name == "" {
		return addFoodForm{}, &FormError{Field: "food_name", Err: ErrFieldRequired}
	}
	return addFoodForm{Name: name}, nil
}

// parseDeleteForm reads the repeated food_ids field. An absent field yields
// an empty selection; a single malformed id rejects the whole form.
func parseDeleteForm(r *http.Request) (deleteFoodsForm, error) {
	if err := parseBody(r); err != nil {
		return deleteFoodsForm{}, err
	}

	raw := r.PostForm["food_ids"]
	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			return deleteFoodsForm{}, &FormError{Field: "food_ids", Value: v, Err: ErrInvalidInteger}
		}
		ids = append(ids, id)
	}
	return deleteFoodsForm{IDs: ids}, nil
}
