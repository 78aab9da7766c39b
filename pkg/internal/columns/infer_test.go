package columns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeisme/csvvault/pkg/internal/columns"
	"github.com/yeisme/csvvault/pkg/internal/model"
)

func TestInferString(t *testing.T) {
	tests := []struct {
		in   string
		want model.ColumnType
	}{
		{"01/02/2020", model.ColumnTypeDatetime},
		{"1/2/3", model.ColumnTypeDatetime},
		{"99/99/9999", model.ColumnTypeDatetime},
		{"born on 12/25/1999 at noon", model.ColumnTypeDatetime},
		{"2020/01/02", model.ColumnTypeDatetime},
		{"2020-01-02", model.ColumnTypeText},
		{"1/2", model.ColumnTypeText},
		{"42", model.ColumnTypeNumber},
		{"007", model.ColumnTypeNumber},
		{"42\n", model.ColumnTypeNumber},
		{"٣٤", model.ColumnTypeNumber},
		{"3.14", model.ColumnTypeText},
		{"-5", model.ColumnTypeText},
		{"+5", model.ColumnTypeText},
		{"1e5", model.ColumnTypeText},
		{" 42", model.ColumnTypeText},
		{"", model.ColumnTypeText},
		{"foo", model.ColumnTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, columns.InferString(tt.in))
		})
	}
}

func TestInfer(t *testing.T) {
	assert.Equal(t, model.ColumnTypeNumber, columns.Infer(7))
	assert.Equal(t, model.ColumnTypeNumber, columns.Infer(int64(-7)))
	assert.Equal(t, model.ColumnTypeNumber, columns.Infer(uint8(7)))
	assert.Equal(t, model.ColumnTypeText, columns.Infer(3.5))
	assert.Equal(t, model.ColumnTypeText, columns.Infer(nil))
	assert.Equal(t, model.ColumnTypeText, columns.Infer(true))
	assert.Equal(t, model.ColumnTypeDatetime, columns.Infer("1/1/1"))
	assert.Equal(t, model.ColumnTypeNumber, columns.Infer([]byte("12")))
}
