package columns

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yeisme/csvvault/pkg/internal/model"
	"github.com/yeisme/csvvault/pkg/log"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyFile 文件没有表头行.
var ErrEmptyFile = errors.New("csv file has no header row")

// Extract 读取 path 指向的 CSV，第 0 行为表头，第 1 行（如果存在）作为类型推断的样本.
// 返回的 Column 尚未持久化，FileID 已填好. 任何读取或解析错误都只记录日志，
// 并返回出错前已构建的部分（可能为 nil）.
func Extract(path string, fileID uint) []model.Column {
	l := log.Logger().With().Str("path", path).Uint("file_id", fileID).Logger()

	f, err := os.Open(path)
	if err != nil {
		l.Error().Err(err).Msg("failed to open csv for column extraction")

		return nil
	}
	defer f.Close()

	cols, err := ExtractFrom(f, fileID)
	if err != nil {
		l.Error().Err(err).Int("columns", len(cols)).Msg("failed to extract columns")
	}

	return cols
}

// ExtractFrom 与 Extract 相同，但从 reader 读取并返回错误，便于调用方自行决定如何处理.
// 出错时返回值仍包含已构建的列.
func ExtractFrom(r io.Reader, fileID uint) ([]model.Column, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}

	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	sample, sampleErr := reader.Read()
	if errors.Is(sampleErr, io.EOF) {
		sample, sampleErr = nil, nil
	}

	cols := make([]model.Column, 0, len(header))
	for i, name := range header {
		colType := model.ColumnTypeText
		if sampleErr == nil && i < len(sample) {
			colType = InferString(sample[i])
		}

		cols = append(cols, model.Column{
			Index:  i,
			Name:   name,
			Type:   colType,
			FileID: fileID,
		})
	}

	if sampleErr != nil {
		return cols, fmt.Errorf("read sample row: %w", sampleErr)
	}

	return cols, nil
}
