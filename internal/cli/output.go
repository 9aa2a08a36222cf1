package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

const tablePadding = 2

// Output печатает результаты команд: таблицей для человека,
// JSON для скриптов. Данные идут в stdout, служебные сообщения в stderr,
// чтобы вывод можно было передавать по конвейеру.
type Output struct {
	jsonMode bool
	data     io.Writer
	status   io.Writer
}

// NewOutput создаёт Output. При jsonMode=true Print выводит JSON.
func NewOutput(jsonMode bool) *Output {
	return &Output{jsonMode: jsonMode, data: os.Stdout, status: os.Stderr}
}

// Print выводит данные в выбранном формате.
func (o *Output) Print(headers []string, rows [][]string, jsonData any) {
	if o.jsonMode {
		o.JSON(jsonData)
		return
	}
	o.Table(headers, rows)
}

// Table выводит таблицу с заголовком и строкой-разделителем.
func (o *Output) Table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(o.data, 0, 0, tablePadding, ' ', 0)
	writeTableRow(tw, headers)

	sep := make([]string, len(headers))
	for i, h := range headers {
		sep[i] = strings.Repeat("-", len(h))
	}
	writeTableRow(tw, sep)

	for _, row := range rows {
		writeTableRow(tw, row)
	}
	tw.Flush()
}

func writeTableRow(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}

// JSON выводит значение с отступами.
func (o *Output) JSON(v any) {
	enc := json.NewEncoder(o.data)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		o.Error(err.Error())
	}
}

// Success выводит служебное сообщение в stderr.
func (o *Output) Success(msg string) {
	fmt.Fprintln(o.status, msg)
}

// Error выводит сообщение об ошибке в stderr.
func (o *Output) Error(msg string) {
	fmt.Fprintln(o.status, "Error: "+msg)
}
