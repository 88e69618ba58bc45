package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// formatBatchResults formats item results in the specified format.
func formatBatchResults(results []ItemResult, mode Mode, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(results, mode)
	case "csv":
		return formatCSV(results)
	default: // text
		return formatText(results), nil
	}
}

func formatJSON(results []ItemResult, mode Mode) (string, error) {
	out := struct {
		Mode  Mode         `json:"mode"`
		Items []ItemResult `json:"items"`
	}{Mode: mode, Items: results}
	if out.Items == nil {
		out.Items = []ItemResult{}
	}
	bts, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bts) + "\n", nil
}

func formatCSV(results []ItemResult) (string, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)
	if err := writer.Write([]string{"source", "line", "input", "digits", "output", "valid", "error_type", "error"}); err != nil {
		return "", err
	}
	for _, r := range results {
		row := []string{
			r.Source,
			strconv.Itoa(r.Line),
			r.Input,
			r.Digits,
			r.Output,
			strconv.FormatBool(r.Valid),
			r.ErrorType,
			r.Error,
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return output.String(), writer.Error()
}

// formatText prints one line per item: the output on success, or the
// location and error on failure.
func formatText(results []ItemResult) string {
	var output strings.Builder
	for _, r := range results {
		if r.Valid {
			output.WriteString(r.Output)
		} else {
			output.WriteString(fmt.Sprintf("%s:%d: error: %s", r.Source, r.Line, r.Error))
		}
		output.WriteByte('\n')
	}
	return output.String()
}
