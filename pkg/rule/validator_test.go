package rule_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/rule"
)

type pageQuery struct {
	Page    int    `form:"page"     rule:"omitempty,min=1"`
	PerPage int    `form:"per_page" rule:"omitempty,min=1,max=100"`
	SortBy  string `form:"sort_by"  rule:"omitempty,oneof=id name"`
}

func TestEngine(t *testing.T) {
	assert.NotNil(t, rule.Engine())
	assert.Same(t, rule.Engine(), rule.Engine())
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, rule.ValidateStruct(pageQuery{}))
	require.NoError(t, rule.ValidateStruct(pageQuery{Page: 2, PerPage: 100, SortBy: "name"}))

	err := rule.ValidateStruct(pageQuery{Page: -1, PerPage: 500, SortBy: "size"})
	require.Error(t, err)

	errs := rule.Errors(err)
	assert.Equal(t, "min=1", errs["page"])
	assert.Equal(t, "max=100", errs["per_page"])
	assert.Equal(t, "oneof=id name", errs["sort_by"])
}

func TestErrors_NonValidation(t *testing.T) {
	assert.Nil(t, rule.Errors(errors.New("boom")))
	assert.Nil(t, rule.Errors(nil))
}

func TestValidateVar(t *testing.T) {
	require.NoError(t, rule.ValidateVar("localhost:6379", "hostname_port"))
	require.Error(t, rule.ValidateVar("localhost", "hostname_port"))
	require.NoError(t, rule.ValidateVar(25, "gte=18"))
	require.Error(t, rule.ValidateVar(15, "gte=18"))
}

func TestRegisterValidation(t *testing.T) {
	err := rule.RegisterValidation("lowercase_ext", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && s == strings.ToLower(s) && !strings.HasPrefix(s, ".")
	})
	require.NoError(t, err)

	require.NoError(t, rule.ValidateVar("csv", "lowercase_ext"))
	require.Error(t, rule.ValidateVar(".CSV", "lowercase_ext"))
}

func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("sort_order", "omitempty,oneof=asc desc")

	require.NoError(t, rule.ValidateVar("desc", "sort_order"))
	require.NoError(t, rule.ValidateVar("", "sort_order"))
	require.Error(t, rule.ValidateVar("up", "sort_order"))
}
