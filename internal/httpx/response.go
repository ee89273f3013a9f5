package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ErrorResponse is the uniform failure body.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Order not found"`
	Details string `json:"details,omitempty"`
}

func Fail(c *gin.Context, status int, msg string, details ...string) {
	body := ErrorResponse{Success: false, Error: msg}
	if len(details) > 0 {
		body.Details = details[0]
	}
	c.AbortWithStatusJSON(status, body)
}

// BindStrict decodes a JSON body into dst, rejecting unknown fields and
// trailing data. Binding tags on dst are then validated by gin's validator.
func BindStrict(c *gin.Context, dst any) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(dst)
}

// Page reads page/limit query params. page defaults to 1; limit defaults to
// def and is clamped to [1, max].
func Page(c *gin.Context, def, max int) (page, limit int, err error) {
	page, limit = 1, def
	if v := c.Query("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page %q", v)
		}
	}
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			return 0, 0, fmt.Errorf("invalid limit %q", v)
		}
		if limit < 1 {
			limit = 1
		}
		if limit > max {
			limit = max
		}
	}
	return page, limit, nil
}
