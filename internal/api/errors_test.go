package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"blogapi/internal/model"
	"blogapi/internal/pipe"
	"blogapi/internal/store"
)

func TestKindStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{InvalidIdentifier, http.StatusBadRequest},
		{InvalidReference, http.StatusBadRequest},
		{ValidationFailed, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{StoreFailure, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.kind.Status())
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "classified error keeps its kind",
			err:      Errf(InvalidIdentifier, "Invalid user ID"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid user ID",
		},
		{
			name:     "validation error is a client error",
			err:      &model.ValidationError{Message: "name is required"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "name is required",
		},
		{
			name:     "duplicate key is a client error",
			err:      &store.DuplicateKeyError{Field: "email"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "duplicate key error: email must be unique",
		},
		{
			name:     "missing document is not found",
			err:      store.ErrNoDocuments,
			wantCode: http.StatusNotFound,
			wantMsg:  "Not found",
		},
		{
			name:     "anything unclassified is a store failure",
			err:      errors.New("connection reset"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "connection reset",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			se := classify(tc.err)
			assert.Equal(t, tc.wantCode, se.Code)
			assert.Equal(t, tc.wantMsg, se.Obj.(pipe.H)["error"])
		})
	}
}
