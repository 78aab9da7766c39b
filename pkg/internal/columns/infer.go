// Package columns 负责从上传的 CSV 中读取表头并推断每一列的类型.
//
// 推断规则（按优先级）：
//  1. 值中任意位置出现 数字/数字/数字 即视为 datetime（不校验日期是否合法，99/99/9999 同样命中）
//  2. 整个值只由数字组成视为 number（小数、负数、科学计数法都不算）
//  3. 其它一律为 text
//
// 数字按 Unicode 十进制数字（\p{Nd}）匹配.
package columns

import (
	"regexp"

	"github.com/yeisme/csvvault/pkg/internal/model"
	"github.com/yeisme/csvvault/pkg/log"
)

var (
	// datetimePattern 非锚定匹配，出现在值的任意位置即可.
	datetimePattern = regexp.MustCompile(`\p{Nd}+/\p{Nd}+/\p{Nd}+`)
	// numberPattern 允许末尾一个换行.
	numberPattern = regexp.MustCompile(`^\p{Nd}+\n?$`)
)

// InferString 推断字符串值的列类型.
func InferString(s string) model.ColumnType {
	l := log.Logger()

	if datetimePattern.MatchString(s) {
		l.Debug().Str("value", s).Msg("value looks like a date")

		return model.ColumnTypeDatetime
	}

	if numberPattern.MatchString(s) {
		l.Debug().Str("value", s).Msg("value looks like a number")

		return model.ColumnTypeNumber
	}

	l.Debug().Str("value", s).Msg("falling back to text")

	return model.ColumnTypeText
}

// Infer 推断任意值的列类型：字符串走 InferString，整数类型一律为 number，其余为 text.
func Infer(v any) model.ColumnType {
	switch val := v.(type) {
	case string:
		return InferString(val)
	case []byte:
		return InferString(string(val))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return model.ColumnTypeNumber
	default:
		return model.ColumnTypeText
	}
}
