package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// VoteRequest is the PATCH /reviews/{review_id} body. IncVotes is left
// untyped so that a wrong JSON type is reported as ErrWrongInput instead of
// a decode failure.
type VoteRequest struct {
	IncVotes any `json:"inc_votes"`
}

// CommentRequest is the POST /reviews/{review_id}/comments body.
type CommentRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// NewComment is a validated comment ready to be stored.
type NewComment struct {
	Author string
	Body   string
}

// DecodeVoteRequest reads a VoteRequest. Malformed JSON is ErrWrongInput.
// Unknown fields are ignored.
func DecodeVoteRequest(r io.Reader) (VoteRequest, error) {
	var req VoteRequest
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return VoteRequest{}, fmt.Errorf("%w: %v", ErrWrongInput, err)
	}
	return req, nil
}

// DecodeCommentRequest reads a CommentRequest. Malformed JSON or a field of
// the wrong JSON type is ErrInvalidInput. Unknown fields are ignored.
func DecodeCommentRequest(r io.Reader) (CommentRequest, error) {
	var req CommentRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return CommentRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return req, nil
}

// BuildVoteDelta converts an inc_votes value into a signed delta. Integral
// numbers are accepted; strings, booleans, fractions, a missing value and
// anything else fail with ErrWrongInput.
func BuildVoteDelta(incVotes any) (int, error) {
	switch v := incVotes.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			if n > math.MaxInt32 || n < math.MinInt32 {
				return 0, fmt.Errorf("%w: inc_votes %d out of range", ErrWrongInput, n)
			}
			return int(n), nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: inc_votes %q", ErrWrongInput, v.String())
		}
		return floatDelta(f)
	case float64:
		return floatDelta(v)
	case nil:
		return 0, fmt.Errorf("%w: inc_votes is required", ErrWrongInput)
	default:
		return 0, fmt.Errorf("%w: inc_votes has type %T", ErrWrongInput, incVotes)
	}
}

func floatDelta(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: inc_votes %v", ErrWrongInput, f)
	}
	return int(f), nil
}

// BuildNewComment validates that both username and body are present and
// non-empty.
func BuildNewComment(req CommentRequest) (NewComment, error) {
	if err := validate.Struct(req); err != nil {
		return NewComment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return NewComment{Author: req.Username, Body: req.Body}, nil
}
